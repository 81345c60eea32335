package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Options configure how the browser is obtained.
type Options struct {
	// Remote is the devtools websocket URL of a running browser. When set,
	// the manager attaches to it instead of launching one.
	Remote      string
	Headless    bool
	UserDataDir string
}

// Manager owns a chromedp browser and the tab the web app runs in.
type Manager struct {
	allocCancel context.CancelFunc
	Ctx         context.Context
	cancel      context.CancelFunc
}

func NewManager(opts Options) (*Manager, error) {
	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
	)
	if opts.Remote != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(context.Background(), opts.Remote)
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.Background(), execOptions(opts)...)
	}

	ctx, cancel := chromedp.NewContext(allocCtx)

	// start the browser (or attach) now so errors surface here
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	return &Manager{allocCancel: allocCancel, Ctx: ctx, cancel: cancel}, nil
}

func execOptions(opts Options) []chromedp.ExecAllocatorOption {
	out := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	out = append(out,
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("start-maximized", true),
		chromedp.WindowSize(1280, 900),
	)
	if opts.UserDataDir != "" {
		out = append(out, chromedp.UserDataDir(opts.UserDataDir))
	}
	return out
}

// WithTimeout derives a context bounded by d from the tab context.
func (m *Manager) WithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.Ctx, d)
}

// Navigate opens url in the tab and waits for the body to be ready.
func (m *Manager) Navigate(url string, timeout time.Duration) error {
	ctx, cancel := m.WithTimeout(timeout)
	defer cancel()
	if err := chromedp.Run(ctx, chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// Dump renders the interactive elements of the page.
func (m *Manager) Dump(ctx context.Context) (string, error) {
	runCtx, cancel := context.WithTimeout(m.Ctx, 10*time.Second)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var (
		els   []Element
		url   string
		title string
	)
	err := chromedp.Run(runCtx,
		chromedp.Location(&url),
		chromedp.Title(&title),
		chromedp.Evaluate(dumpScript, &els),
	)
	if err != nil {
		return "", fmt.Errorf("page dump: %w", err)
	}
	return FormatDump(url, title, els), nil
}

func (m *Manager) Close() {
	if m.cancel != nil {
		m.cancel()
	}
	if m.allocCancel != nil {
		m.allocCancel()
	}
}
