package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/nbenliogludev/go-market-sniper/internal/sniper"
)

// Target receives tunable changes found on reload.
type Target interface {
	UpdateParameter(name, value string) error
	SetDefaults(t sniper.Tunables)
}

// Watcher re-reads the config file when it changes and pushes changed
// tunables into the target as parameter updates.
type Watcher struct {
	path     string
	target   Target
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *zap.Logger

	mu      sync.RWMutex
	current *Config
}

// NewWatcher watches the file at path. initial is the config already in use.
func NewWatcher(path string, initial *Config, target Target, log *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}
	if initial == nil {
		initial = Default()
	}
	return &Watcher{
		path:     abs,
		target:   target,
		watcher:  fsWatcher,
		debounce: 100 * time.Millisecond,
		log:      log.Named("config"),
		current:  initial,
	}, nil
}

// Start watches the file's directory, so editors that replace the file
// are seen too.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	go w.run(ctx)
	return nil
}

func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// Current returns the last config loaded successfully.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *Watcher) run(ctx context.Context) {
	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				pending = time.Now()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				pending = time.Time{}
				w.reload()
			}
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.log.Warn("config reload failed, keeping previous", zap.Error(err))
		return
	}

	w.mu.Lock()
	prev := w.current
	w.current = cfg
	w.mu.Unlock()

	before := prev.Tunables.Values()
	after := cfg.Tunables.Values()
	for _, p := range sniper.Params {
		if before[p] == after[p] {
			continue
		}
		if err := w.target.UpdateParameter(string(p), after[p]); err != nil {
			w.log.Warn("tunable not applied", zap.String("param", string(p)), zap.Error(err))
			continue
		}
		w.log.Info("tunable reloaded", zap.String("param", string(p)), zap.String("from", before[p]), zap.String("to", after[p]))
	}
	w.target.SetDefaults(cfg.Tunables)
}
