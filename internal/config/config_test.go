package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbenliogludev/go-market-sniper/internal/sniper"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverChromedp, cfg.Browser.Driver)
}

func TestLoad(t *testing.T) {
	t.Setenv("SNIPER_REMOTE", "ws://127.0.0.1:9222/devtools/browser/abc")
	path := filepath.Join(t.TempDir(), "sniper.yaml")
	writeFile(t, path, `
browser:
  driver: playwright
  remote: ${SNIPER_REMOTE}
  headless: true
  action_timeout: 2s
panel:
  addr: ":9000"
log:
  level: debug
tunables:
  rpm: 30
  search_result_delay: 400ms
summary:
  enabled: true
  model: gpt-4o-mini
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverPlaywright, cfg.Browser.Driver)
	assert.Equal(t, "ws://127.0.0.1:9222/devtools/browser/abc", cfg.Browser.Remote)
	assert.Equal(t, DefaultURL, cfg.Browser.URL)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 2*time.Second, cfg.Browser.ActionTimeout)
	assert.Equal(t, ":9000", cfg.Panel.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Summary.Enabled)
	assert.Equal(t, "gpt-4o-mini", cfg.Summary.Model)
	assert.Equal(t, sniper.Tunables{
		RPM:                  30,
		SearchResultDelay:    400 * time.Millisecond,
		ConfirmDialogDelay:   sniper.DefaultConfirmDialogDelay,
		ConfirmPurchaseDelay: sniper.DefaultConfirmPurchaseDelay,
	}, cfg.Tunables)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "browser:\n  driver: firefox\n")
	_, err := Load(bad)
	assert.ErrorContains(t, err, "browser.driver")

	broken := filepath.Join(dir, "broken.yaml")
	writeFile(t, broken, "browser: [")
	_, err = Load(broken)
	assert.ErrorContains(t, err, "parse config YAML")
}
