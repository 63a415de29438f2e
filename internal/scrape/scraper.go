// Package scrape captures the first item on the explore page: its detail
// URL, artist, summary, prompt, and a local copy of the media asset. The
// session moves through an explicit state machine so its progress can be
// reported while a capture runs.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"

	"github.com/wagner-austin/signal-bot/internal/config"
	"github.com/wagner-austin/signal-bot/internal/logging"
)

// State names one phase of a scrape session.
type State string

const (
	StateInitial     State = "initial"
	StateSetup       State = "setup"
	StateNavigating  State = "navigating"
	StateCapturing   State = "capturing"
	StateDownloading State = "downloading"
	StateWaiting     State = "waiting"
	StateIdle        State = "idle"
	StateClosing     State = "closing"
	StateCompleted   State = "completed"
)

// Capture is the result of one scrape session.
type Capture struct {
	SessionID string
	PageURL   string
	Artist    string
	Summary   string
	Prompt    string
	MediaURL  string
	SavedPath string
}

// Scraper drives a headless browser against the explore page. One session
// runs at a time.
type Scraper struct {
	cfg          config.ScraperConfig
	pageTimeout  time.Duration
	stayDuration time.Duration
	httpClient   *http.Client

	mu      sync.Mutex
	running bool
	state   State
}

// New returns an idle scraper.
func New(cfg config.ScraperConfig, pageTimeout, stayDuration time.Duration) *Scraper {
	return &Scraper{
		cfg:          cfg,
		pageTimeout:  pageTimeout,
		stayDuration: stayDuration,
		httpClient:   &http.Client{Timeout: 2 * time.Minute},
		state:        StateInitial,
	}
}

// State returns the current session state.
func (s *Scraper) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scraper) setState(next State) {
	s.mu.Lock()
	previous := s.state
	s.state = next
	s.mu.Unlock()
	logging.Browser("state changed from %s to %s", previous, next)
}

// StartSession launches a capture in the background and returns a status
// line for the chat reply. A second start while one runs is refused.
func (s *Scraper) StartSession() (string, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return "A scrape session is already running. Wait for it to finish.", nil
	}
	s.running = true
	s.mu.Unlock()

	id := uuid.NewString()
	go func() {
		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()
		capture, err := s.Run(context.Background(), id)
		if err != nil {
			logging.Browser("session %s failed: %v", id, err)
			return
		}
		logging.Browser("session %s captured %s -> %s", id, capture.MediaURL, capture.SavedPath)
	}()
	return fmt.Sprintf("Scrape session %s started.", id), nil
}

// Run performs one full capture synchronously.
func (s *Scraper) Run(ctx context.Context, sessionID string) (*Capture, error) {
	s.setState(StateSetup)
	controlURL, err := launcher.New().Headless(s.cfg.Headless).Launch()
	if err != nil {
		s.setState(StateCompleted)
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		s.setState(StateCompleted)
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer func() {
		s.setState(StateClosing)
		if err := browser.Close(); err != nil {
			logging.Browser("browser close failed: %v", err)
		}
		s.setState(StateCompleted)
	}()

	s.setState(StateNavigating)
	page, err := browser.Page(proto.TargetCreateTarget{URL: s.cfg.BaseURL})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.cfg.BaseURL, err)
	}
	if err := page.Timeout(s.pageTimeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("explore page did not load: %w", err)
	}

	capture, err := s.captureFirstItem(page, sessionID)
	if err != nil {
		return nil, err
	}

	s.setState(StateWaiting)
	select {
	case <-ctx.Done():
	case <-time.After(s.stayDuration):
	}
	s.setState(StateIdle)
	return capture, nil
}

// captureFirstItem follows the first thumbnail to its detail page and pulls
// out the media plus surrounding text. Artist, prompt, and summary are each
// best effort: a missing element leaves the field empty.
func (s *Scraper) captureFirstItem(page *rod.Page, sessionID string) (*Capture, error) {
	s.setState(StateCapturing)

	thumbnail, err := page.Timeout(s.pageTimeout).Element("a[href^='/g/']")
	if err != nil {
		return nil, fmt.Errorf("no detail link found on explore page: %w", err)
	}
	href, err := thumbnail.Attribute("href")
	if err != nil || href == nil {
		return nil, fmt.Errorf("detail link has no href")
	}
	detailURL := *href
	if strings.HasPrefix(detailURL, "/") {
		detailURL = strings.TrimSuffix(s.cfg.BaseURL, "/explore") + detailURL
	}

	artist := ""
	if parent, err := thumbnail.Parent(); err == nil {
		if el, err := parent.Timeout(2 * time.Second).Element("button span.truncate"); err == nil {
			if text, err := el.Text(); err == nil {
				artist = strings.TrimSpace(text)
			}
		}
	}

	logging.Browser("navigating to detail page %s", detailURL)
	if err := page.Timeout(s.pageTimeout).Navigate(detailURL); err != nil {
		return nil, fmt.Errorf("failed to open detail page: %w", err)
	}
	if err := page.Timeout(s.pageTimeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("detail page did not load: %w", err)
	}

	mediaURL, mediaType, err := s.findMedia(page)
	if err != nil {
		return nil, err
	}

	s.setState(StateDownloading)
	savedPath, err := s.saveMedia(mediaURL, mediaType)
	if err != nil {
		logging.Browser("media download failed: %v", err)
	}

	capture := &Capture{
		SessionID: sessionID,
		PageURL:   detailURL,
		Artist:    artist,
		MediaURL:  mediaURL,
		SavedPath: savedPath,
		Prompt:    s.elementText(page, `//div[contains(text(),'Prompt')]/following-sibling::button`),
		Summary:   s.elementText(page, `//div[contains(@class,'truncate') and not(ancestor::a)]`),
	}
	if capture.Summary == "" {
		if info, err := page.Info(); err == nil {
			capture.Summary = strings.TrimSpace(info.Title)
		}
	}
	return capture, nil
}

// findMedia prefers the generated image and falls back to a video source.
func (s *Scraper) findMedia(page *rod.Page) (string, string, error) {
	if el, err := page.Timeout(s.pageTimeout).Element("img[alt='Generated image']"); err == nil {
		if src, err := el.Attribute("src"); err == nil && src != nil {
			return *src, "image", nil
		}
	}
	el, err := page.Timeout(s.pageTimeout).Element("video[src]")
	if err != nil {
		return "", "", fmt.Errorf("no media element found on detail page: %w", err)
	}
	src, err := el.Attribute("src")
	if err != nil || src == nil {
		return "", "", fmt.Errorf("video element has no src")
	}
	return *src, "video", nil
}

func (s *Scraper) elementText(page *rod.Page, xpath string) string {
	el, err := page.Timeout(5 * time.Second).ElementX(xpath)
	if err != nil {
		return ""
	}
	text, err := el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// saveMedia downloads the asset into the download directory, naming the file
// after the asset path.
func (s *Scraper) saveMedia(mediaURL, mediaType string) (string, error) {
	if err := os.MkdirAll(s.cfg.DownloadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	target := filepath.Join(s.cfg.DownloadDir, mediaFilename(mediaURL, mediaType))
	resp, err := s.httpClient.Get(mediaURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch media: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media fetch returned %s", resp.Status)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", err
	}
	if _, err := f.ReadFrom(resp.Body); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	logging.Browser("media saved to %s", target)
	return target, nil
}

// mediaFilename flattens the asset path into a single filename, defaulting
// the extension by media type when the URL carries none.
func mediaFilename(mediaURL, mediaType string) string {
	parsed, err := url.Parse(mediaURL)
	decoded := mediaURL
	if err == nil {
		if p, uerr := url.PathUnescape(parsed.Path); uerr == nil {
			decoded = p
		} else {
			decoded = parsed.Path
		}
	}
	decoded = strings.TrimPrefix(decoded, "/vg-assets/")
	ext := path.Ext(decoded)
	if ext == "" {
		if mediaType == "image" {
			ext = ".webp"
		} else {
			ext = ".mp4"
		}
	}
	base := strings.TrimSuffix(decoded, ext)
	return strings.ReplaceAll(strings.TrimPrefix(base, "/"), "/", "_") + ext
}
