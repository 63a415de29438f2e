package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides_Permissions(t *testing.T) {
	t.Run("BOT_OWNER sets a single owner", func(t *testing.T) {
		t.Setenv("BOT_OWNER", "+15551230001")
		t.Setenv("BOT_ADMINS", "")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, []string{"+15551230001"}, cfg.Permissions.OwnerNumbers)
		assert.Empty(t, cfg.Permissions.AdminNumbers)
	})

	t.Run("BOT_ADMINS splits on commas and trims", func(t *testing.T) {
		t.Setenv("BOT_ADMINS", "+15551230002, +15551230003 ,,+15551230004")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		require.Len(t, cfg.Permissions.AdminNumbers, 3)
		assert.Equal(t, "+15551230003", cfg.Permissions.AdminNumbers[1])
	})

	t.Run("env wins over file values", func(t *testing.T) {
		t.Setenv("BOT_OWNER", "+15550000009")

		cfg := DefaultConfig()
		cfg.Permissions.OwnerNumbers = []string{"+15551111111"}
		cfg.applyEnvOverrides()

		assert.Equal(t, []string{"+15550000009"}, cfg.Permissions.OwnerNumbers)
	})
}
