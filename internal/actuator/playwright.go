package actuator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Playwright drives a playwright page with the same DOM script as CDP.
type Playwright struct {
	page playwright.Page
}

func NewPlaywright(page playwright.Page) *Playwright {
	return &Playwright{page: page}
}

func (a *Playwright) Read(ctx context.Context, loc Locator) (Value, error) {
	res, err := a.eval(ctx, readRequest(loc))
	if err != nil || !res.Found {
		return Absent, err
	}
	return Found(res.Value), nil
}

func (a *Playwright) Count(ctx context.Context, loc Locator) (int, error) {
	res, err := a.eval(ctx, request{Op: opCount, Path: loc.Path})
	if err != nil {
		return 0, err
	}
	return res.Count, nil
}

func (a *Playwright) Write(ctx context.Context, loc Locator, value string) (bool, error) {
	res, err := a.eval(ctx, request{Op: opWrite, Path: loc.Path, Value: value})
	return res.Found, err
}

func (a *Playwright) Press(ctx context.Context, loc Locator) (bool, error) {
	res, err := a.eval(ctx, request{Op: opPress, Path: loc.Path})
	return res.Found, err
}

func (a *Playwright) eval(ctx context.Context, req request) (result, error) {
	if err := ctx.Err(); err != nil {
		return result{}, err
	}

	expr, err := buildExpression(req)
	if err != nil {
		return result{}, err
	}

	raw, err := a.page.Evaluate(expr)
	if err != nil {
		return result{}, fmt.Errorf("playwright %s %s: %w", req.Op, Locator{Path: req.Path}, err)
	}
	return decodeResult(raw)
}

// decodeResult converts the loosely typed value playwright returns.
func decodeResult(raw interface{}) (result, error) {
	var res result
	if raw == nil {
		return res, nil
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return res, fmt.Errorf("encode evaluate result: %w", err)
	}
	if err := json.Unmarshal(buf, &res); err != nil {
		return res, fmt.Errorf("decode evaluate result: %w", err)
	}
	return res, nil
}
