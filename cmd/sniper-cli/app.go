package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/nbenliogludev/go-market-sniper/internal/actuator"
	"github.com/nbenliogludev/go-market-sniper/internal/browser"
	"github.com/nbenliogludev/go-market-sniper/internal/config"
	"github.com/nbenliogludev/go-market-sniper/internal/delay"
	"github.com/nbenliogludev/go-market-sniper/internal/llm"
	"github.com/nbenliogludev/go-market-sniper/internal/logging"
	"github.com/nbenliogludev/go-market-sniper/internal/panel"
	"github.com/nbenliogludev/go-market-sniper/internal/sniper"
)

const (
	navigateTimeout = 60 * time.Second
	shutdownTimeout = 30 * time.Second
)

type app struct {
	cfg     *config.Config
	cfgPath string
	log     *zap.Logger
	act     actuator.Actuator
	dumper  panel.Dumper
	close   func()
}

// setup loads configuration, builds the logger and opens the browser.
func setup(_ context.Context, cmd *cli.Command) (*app, error) {
	if err := godotenv.Load(cmd.String("env-file")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", cmd.String("env-file"), err)
	}

	path := cmd.String("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, cmd)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, cfgPath: path, log: logger}
	if err := a.openBrowser(cmd.IsSet("url")); err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return a, nil
}

func applyFlags(cfg *config.Config, cmd *cli.Command) {
	if cmd.IsSet("driver") {
		cfg.Browser.Driver = cmd.String("driver")
	}
	if cmd.IsSet("url") {
		cfg.Browser.URL = cmd.String("url")
	}
	if cmd.IsSet("remote") {
		cfg.Browser.Remote = cmd.String("remote")
	}
	if cmd.IsSet("headless") {
		cfg.Browser.Headless = cmd.Bool("headless")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("dev") {
		cfg.Log.Development = cmd.Bool("dev")
	}
	if cmd.IsSet("addr") {
		cfg.Panel.Addr = cmd.String("addr")
	}
}

// openBrowser starts the configured driver. An attached browser is assumed
// to have the web app open already unless a URL was given explicitly.
func (a *app) openBrowser(forceNavigate bool) error {
	b := a.cfg.Browser
	opts := browser.Options{Remote: b.Remote, Headless: b.Headless, UserDataDir: b.UserDataDir}
	navigate := b.Remote == "" || forceNavigate

	a.log.Info("starting browser", zap.String("driver", b.Driver), zap.Bool("attach", b.Remote != ""))

	switch b.Driver {
	case config.DriverPlaywright:
		m, err := browser.NewPlaywrightManager(opts)
		if err != nil {
			return fmt.Errorf("failed to start playwright: %w", err)
		}
		if navigate {
			if err := m.Navigate(b.URL); err != nil {
				m.Close()
				return err
			}
		}
		a.act = actuator.NewPlaywright(m.Page)
		a.dumper = m
		a.close = m.Close
	default:
		m, err := browser.NewManager(opts)
		if err != nil {
			return fmt.Errorf("failed to start chromedp: %w", err)
		}
		if navigate {
			if err := m.Navigate(b.URL, navigateTimeout); err != nil {
				m.Close()
				return err
			}
		}
		a.act = actuator.NewCDP(m.Ctx, b.ActionTimeout)
		a.dumper = m
		a.close = m.Close
	}
	return nil
}

func (a *app) newController(hub *panel.Hub) *sniper.Controller {
	reporters := sniper.Reporters{sniper.LogReporter{Log: a.log.Named("events")}}
	if hub != nil {
		reporters = append(reporters, hub)
	}

	opts := []sniper.Option{sniper.WithDefaults(a.cfg.Tunables)}
	if a.cfg.Summary.Enabled {
		client, err := llm.NewOpenAIClient(a.cfg.Summary.Model)
		if err != nil {
			a.log.Warn("run summary disabled", zap.Error(err))
		} else {
			opts = append(opts, sniper.WithSummarizer(client))
		}
	}
	return sniper.NewController(a.act, delay.Clock{}, reporters, a.log, opts...)
}

func (a *app) closeAll() {
	if a.close != nil {
		a.close()
	}
	_ = a.log.Sync()
}

func runCommand(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.closeAll()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	signals := sniper.NewSignalController()
	defer signals.Close()
	go func() {
		select {
		case sig := <-signals.C():
			a.log.Info("signal received, shutting down", zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
	}()

	hub := panel.NewHub(a.log)
	ctrl := a.newController(hub)

	if _, err := os.Stat(a.cfgPath); err == nil {
		w, err := config.NewWatcher(a.cfgPath, a.cfg, ctrl, a.log)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	srv := panel.NewServer(ctrl, hub, panel.WithDumper(a.dumper), panel.WithLogger(a.log))
	serveErr := srv.ListenAndServe(ctx, a.cfg.Panel.Addr)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := ctrl.Shutdown(shutdownCtx); err != nil {
		a.log.Warn("run did not settle before shutdown", zap.Error(err))
	}
	return serveErr
}
