package actuator

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// DefaultActionTimeout bounds a single DOM round trip.
const DefaultActionTimeout = 5 * time.Second

// CDP drives a chromedp tab.
type CDP struct {
	tab     context.Context
	timeout time.Duration
}

// NewCDP wraps a chromedp tab context (as returned by chromedp.NewContext).
func NewCDP(tab context.Context, timeout time.Duration) *CDP {
	if timeout <= 0 {
		timeout = DefaultActionTimeout
	}
	return &CDP{tab: tab, timeout: timeout}
}

func (a *CDP) Read(ctx context.Context, loc Locator) (Value, error) {
	res, err := a.eval(ctx, readRequest(loc))
	if err != nil || !res.Found {
		return Absent, err
	}
	return Found(res.Value), nil
}

func (a *CDP) Count(ctx context.Context, loc Locator) (int, error) {
	res, err := a.eval(ctx, request{Op: opCount, Path: loc.Path})
	if err != nil {
		return 0, err
	}
	return res.Count, nil
}

func (a *CDP) Write(ctx context.Context, loc Locator, value string) (bool, error) {
	res, err := a.eval(ctx, request{Op: opWrite, Path: loc.Path, Value: value})
	return res.Found, err
}

func (a *CDP) Press(ctx context.Context, loc Locator) (bool, error) {
	res, err := a.eval(ctx, request{Op: opPress, Path: loc.Path})
	return res.Found, err
}

func (a *CDP) eval(ctx context.Context, req request) (result, error) {
	if err := ctx.Err(); err != nil {
		return result{}, err
	}

	expr, err := buildExpression(req)
	if err != nil {
		return result{}, err
	}

	runCtx, cancel := context.WithTimeout(a.tab, a.timeout)
	defer cancel()

	var res result
	if err := chromedp.Run(runCtx, chromedp.Evaluate(expr, &res, asUserGesture)); err != nil {
		return result{}, fmt.Errorf("cdp %s %s: %w", req.Op, Locator{Path: req.Path}, err)
	}
	return res, nil
}

// asUserGesture marks the evaluation as user initiated so synthetic presses
// are treated as user activation by the page.
func asUserGesture(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithUserGesture(true)
}
