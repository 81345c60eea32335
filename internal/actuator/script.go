package actuator

import (
	"encoding/json"
	"errors"
	"fmt"
)

type op string

const (
	opRead  op = "read"
	opCount op = "count"
	opWrite op = "write"
	opPress op = "press"
)

type request struct {
	Op    op     `json:"op"`
	Path  []Step `json:"path"`
	Prop  Prop   `json:"prop,omitempty"`
	Value string `json:"value,omitempty"`
}

type result struct {
	Found bool   `json:"found"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// domScript resolves the locator path and performs a single operation.
// The host app listens for mousedown/mouseup rather than click, and for
// input/change on numeric fields.
const domScript = `(function(req) {
	let root = document;
	const last = req.path.length - 1;
	for (let i = 0; i < last; i++) {
		root = root.querySelectorAll(req.path[i].css)[req.path[i].nth];
		if (!root) {
			return {found: false, count: 0};
		}
	}
	const step = req.path[last];
	const all = root.querySelectorAll(step.css);
	if (req.op === 'count') {
		return {found: true, count: all.length};
	}
	const el = all[step.nth];
	if (!el) {
		return {found: false};
	}
	switch (req.op) {
	case 'read':
		if (req.prop === 'disabled') {
			return {found: true, value: String(!!el.disabled)};
		}
		if (req.prop === 'value') {
			return {found: true, value: el.value == null ? '' : String(el.value)};
		}
		return {found: true, value: el.textContent || ''};
	case 'write':
		el.value = req.value;
		el.dispatchEvent(new Event('input', {bubbles: true}));
		el.dispatchEvent(new Event('change', {bubbles: true}));
		return {found: true};
	case 'press':
		el.dispatchEvent(new MouseEvent('mousedown', {bubbles: true, cancelable: true}));
		el.dispatchEvent(new MouseEvent('mouseup', {bubbles: true, cancelable: true}));
		return {found: true};
	}
	return {found: false};
})(%s)`

var errEmptyLocator = errors.New("locator has no steps")

func buildExpression(req request) (string, error) {
	if len(req.Path) == 0 {
		return "", errEmptyLocator
	}
	arg, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	return fmt.Sprintf(domScript, arg), nil
}

func readRequest(loc Locator) request {
	prop := loc.Prop
	if prop == "" {
		prop = PropText
	}
	return request{Op: opRead, Path: loc.Path, Prop: prop}
}
