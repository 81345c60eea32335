// Package actuatortest provides an in-memory page for exercising code that
// drives an actuator.Actuator.
package actuatortest

import (
	"context"
	"strconv"
	"sync"

	"github.com/nbenliogludev/go-market-sniper/internal/actuator"
)

// Element is the fake state of one located element.
type Element struct {
	Text     string
	Value    string
	Disabled bool

	// OnPress runs after a press is recorded, outside the page lock.
	OnPress func(p *Page)
}

// Write records one Write call.
type Write struct {
	Key   string
	Value string
}

// Page is a fake actuator.Actuator keyed by Locator.Key.
type Page struct {
	mu       sync.Mutex
	elements map[string]*Element
	counts   map[string]int
	presses  []string
	writes   []Write

	// Err, when set, is returned by every operation.
	Err error
}

var _ actuator.Actuator = (*Page)(nil)

func New() *Page {
	return &Page{
		elements: make(map[string]*Element),
		counts:   make(map[string]int),
	}
}

// Set renders (or replaces) the element addressed by loc.
func (p *Page) Set(loc actuator.Locator, el Element) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := el
	p.elements[loc.Key()] = &cp
}

// Remove makes the element addressed by loc absent.
func (p *Page) Remove(loc actuator.Locator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.elements, loc.Key())
}

// Has reports whether loc is rendered.
func (p *Page) Has(loc actuator.Locator) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.elements[loc.Key()]
	return ok
}

// SetCount fixes the result of Count(loc).
func (p *Page) SetCount(loc actuator.Locator, n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[loc.Key()] = n
}

// Presses returns the keys of pressed elements in order.
func (p *Page) Presses() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.presses...)
}

// Writes returns all writes in order.
func (p *Page) Writes() []Write {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Write(nil), p.writes...)
}

// ValueOf returns the current value of loc, or "" when absent.
func (p *Page) ValueOf(loc actuator.Locator) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if el, ok := p.elements[loc.Key()]; ok {
		return el.Value
	}
	return ""
}

func (p *Page) Read(_ context.Context, loc actuator.Locator) (actuator.Value, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return actuator.Absent, p.Err
	}
	el, ok := p.elements[loc.Key()]
	if !ok {
		return actuator.Absent, nil
	}
	switch loc.Prop {
	case actuator.PropValue:
		return actuator.Found(el.Value), nil
	case actuator.PropDisabled:
		return actuator.Found(strconv.FormatBool(el.Disabled)), nil
	default:
		return actuator.Found(el.Text), nil
	}
}

func (p *Page) Count(_ context.Context, loc actuator.Locator) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return 0, p.Err
	}
	return p.counts[loc.Key()], nil
}

func (p *Page) Write(_ context.Context, loc actuator.Locator, value string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return false, p.Err
	}
	el, ok := p.elements[loc.Key()]
	if !ok {
		return false, nil
	}
	el.Value = value
	p.writes = append(p.writes, Write{Key: loc.Key(), Value: value})
	return true, nil
}

func (p *Page) Press(_ context.Context, loc actuator.Locator) (bool, error) {
	p.mu.Lock()
	if p.Err != nil {
		p.mu.Unlock()
		return false, p.Err
	}
	el, ok := p.elements[loc.Key()]
	if !ok {
		p.mu.Unlock()
		return false, nil
	}
	p.presses = append(p.presses, loc.Key())
	hook := el.OnPress
	p.mu.Unlock()

	if hook != nil {
		hook(p)
	}
	return true, nil
}
