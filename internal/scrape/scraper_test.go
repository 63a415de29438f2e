package scrape

import (
	"testing"
	"time"

	"github.com/wagner-austin/signal-bot/internal/config"
)

func TestMediaFilename(t *testing.T) {
	cases := []struct {
		url, mediaType, want string
	}{
		{"https://cdn.example.com/vg-assets/abc/def.webp", "image", "abc_def.webp"},
		{"https://cdn.example.com/vg-assets/clip/123", "video", "clip_123.mp4"},
		{"https://cdn.example.com/vg-assets/pic%20one.png", "image", "pic one.png"},
		{"https://cdn.example.com/other/path.mp4", "video", "other_path.mp4"},
	}
	for _, c := range cases {
		if got := mediaFilename(c.url, c.mediaType); got != c.want {
			t.Errorf("mediaFilename(%q, %q) = %q, want %q", c.url, c.mediaType, got, c.want)
		}
	}
}

func TestScraperStatesStartIdle(t *testing.T) {
	s := New(config.ScraperConfig{}, time.Second, time.Second)
	if s.State() != StateInitial {
		t.Errorf("expected initial state, got %s", s.State())
	}
	s.setState(StateNavigating)
	if s.State() != StateNavigating {
		t.Errorf("expected navigating, got %s", s.State())
	}
}

func TestStartSessionRefusesConcurrentRun(t *testing.T) {
	s := New(config.ScraperConfig{}, time.Second, time.Second)
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	reply, err := s.StartSession()
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if reply != "A scrape session is already running. Wait for it to finish." {
		t.Errorf("unexpected reply: %q", reply)
	}
}
