package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nbenliogludev/go-market-sniper/internal/sniper"
)

const (
	DriverChromedp   = "chromedp"
	DriverPlaywright = "playwright"

	DefaultURL       = "https://www.ea.com/ea-sports-fc/ultimate-team/web-app/"
	DefaultPanelAddr = "127.0.0.1:8765"
)

type Config struct {
	Browser  BrowserConfig   `yaml:"browser"`
	Panel    PanelConfig     `yaml:"panel"`
	Log      LogConfig       `yaml:"log"`
	Tunables sniper.Tunables `yaml:"tunables"`
	Summary  SummaryConfig   `yaml:"summary"`
}

type BrowserConfig struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
	// Remote is the devtools websocket URL of an already running browser.
	Remote        string        `yaml:"remote"`
	Headless      bool          `yaml:"headless"`
	UserDataDir   string        `yaml:"user_data_dir"`
	ActionTimeout time.Duration `yaml:"action_timeout"`
}

type PanelConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type SummaryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
}

func Default() *Config {
	return &Config{
		Browser: BrowserConfig{
			Driver:        DriverChromedp,
			URL:           DefaultURL,
			UserDataDir:   "./.browser-data",
			ActionTimeout: 5 * time.Second,
		},
		Panel:    PanelConfig{Addr: DefaultPanelAddr},
		Log:      LogConfig{Level: "info"},
		Tunables: sniper.DefaultTunables(),
	}
}

// Load reads the YAML file at path on top of the defaults. Environment
// variables in the file are expanded. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.Tunables = cfg.Tunables.WithDefaults(sniper.DefaultTunables())
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Browser.Driver {
	case DriverChromedp, DriverPlaywright:
	default:
		errs = append(errs, fmt.Errorf("browser.driver must be %q or %q, got %q", DriverChromedp, DriverPlaywright, c.Browser.Driver))
	}
	if c.Browser.URL == "" {
		errs = append(errs, errors.New("browser.url is required"))
	}
	if c.Browser.ActionTimeout < 0 {
		errs = append(errs, errors.New("browser.action_timeout must not be negative"))
	}
	if c.Tunables.RPM < 0 {
		errs = append(errs, errors.New("tunables.rpm must not be negative"))
	}
	return errors.Join(errs...)
}
