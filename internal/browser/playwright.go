package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightManager runs the web app in a persistent chromium context.
type PlaywrightManager struct {
	pw      *playwright.Playwright
	Context playwright.BrowserContext
	Page    playwright.Page
}

func NewPlaywrightManager(opts Options) (*PlaywrightManager, error) {
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return nil, fmt.Errorf("install pw failed: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start pw failed: %w", err)
	}

	if opts.Remote != "" {
		return attachPlaywright(pw, opts.Remote)
	}

	userDataDir := opts.UserDataDir
	if userDataDir == "" {
		userDataDir = ".playwright_data"
	}

	bctx, err := pw.Chromium.LaunchPersistentContext(
		userDataDir,
		playwright.BrowserTypeLaunchPersistentContextOptions{
			Headless: playwright.Bool(opts.Headless),
			Viewport: nil,
			Args: []string{
				"--start-maximized",
				"--disable-blink-features=AutomationControlled",
			},
		},
	)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	page, err := firstPage(bctx)
	if err != nil {
		_ = bctx.Close()
		_ = pw.Stop()
		return nil, err
	}

	page.SetDefaultTimeout(60000)
	page.SetDefaultNavigationTimeout(60000)

	return &PlaywrightManager{pw: pw, Context: bctx, Page: page}, nil
}

func attachPlaywright(pw *playwright.Playwright, remote string) (*PlaywrightManager, error) {
	b, err := pw.Chromium.ConnectOverCDP(remote)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("connect over cdp: %w", err)
	}
	contexts := b.Contexts()
	if len(contexts) == 0 {
		abandon(b, pw.Stop)
		return nil, fmt.Errorf("remote browser has no context")
	}
	page, err := firstPage(contexts[0])
	if err != nil {
		abandon(b, pw.Stop)
		return nil, err
	}
	return &PlaywrightManager{pw: pw, Context: contexts[0], Page: page}, nil
}

type browserCloser interface {
	Close(options ...playwright.BrowserCloseOptions) error
}

// abandon drops the CDP connection of a failed attach, then stops the driver.
func abandon(b browserCloser, stop func() error) {
	_ = b.Close()
	_ = stop()
}

func firstPage(bctx playwright.BrowserContext) (playwright.Page, error) {
	if pages := bctx.Pages(); len(pages) > 0 {
		return pages[0], nil
	}
	page, err := bctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return page, nil
}

func (m *PlaywrightManager) Navigate(url string) error {
	if _, err := m.Page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// Dump renders the interactive elements of the page.
func (m *PlaywrightManager) Dump(_ context.Context) (string, error) {
	if m == nil || m.Page == nil {
		return "", fmt.Errorf("page is not initialized")
	}

	raw, err := m.Page.Evaluate(dumpScript)
	if err != nil {
		return "", fmt.Errorf("js evaluation failed: %w", err)
	}

	// Evaluate hands back generic maps; round trip them into Element.
	b, err := json.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("page dump: %w", err)
	}
	var els []Element
	if err := json.Unmarshal(b, &els); err != nil {
		return "", fmt.Errorf("page dump: %w", err)
	}

	title, _ := m.Page.Title()
	return FormatDump(m.Page.URL(), title, els), nil
}

func (m *PlaywrightManager) Close() {
	if m.Context != nil {
		_ = m.Context.Close()
	}
	if m.pw != nil {
		_ = m.pw.Stop()
	}
}
