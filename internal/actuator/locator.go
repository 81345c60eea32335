package actuator

import (
	"fmt"
	"strings"
)

// Prop selects what Read returns for the resolved element.
type Prop string

const (
	PropText     Prop = "text"
	PropValue    Prop = "value"
	PropDisabled Prop = "disabled"
)

// Step is one querySelectorAll hop; Nth picks the match to descend into.
type Step struct {
	CSS string `json:"css"`
	Nth int    `json:"nth"`
}

// Locator addresses a single element by walking Path from the document root.
// Locators are values: every builder method returns a copy.
type Locator struct {
	Path []Step `json:"path"`
	Prop Prop   `json:"prop,omitempty"`
}

// Query locates the first element matching css.
func Query(css string) Locator {
	return Nth(css, 0)
}

// Nth locates the n-th (zero based) element matching css.
func Nth(css string, n int) Locator {
	return Locator{Path: []Step{{CSS: css, Nth: n}}}
}

// Find descends into the first match of css below l.
func (l Locator) Find(css string) Locator {
	return l.FindNth(css, 0)
}

// FindNth descends into the n-th match of css below l.
func (l Locator) FindNth(css string, n int) Locator {
	path := make([]Step, 0, len(l.Path)+1)
	path = append(path, l.Path...)
	path = append(path, Step{CSS: css, Nth: n})
	return Locator{Path: path, Prop: l.Prop}
}

// Text reads textContent.
func (l Locator) Text() Locator { return l.withProp(PropText) }

// Value reads the value property of form controls.
func (l Locator) Value() Locator { return l.withProp(PropValue) }

// Disabled reads the disabled flag as "true" or "false".
func (l Locator) Disabled() Locator { return l.withProp(PropDisabled) }

func (l Locator) withProp(p Prop) Locator {
	path := make([]Step, len(l.Path))
	copy(path, l.Path)
	return Locator{Path: path, Prop: p}
}

// Key identifies the element regardless of the property being read.
func (l Locator) Key() string {
	parts := make([]string, len(l.Path))
	for i, s := range l.Path {
		if s.Nth == 0 {
			parts[i] = s.CSS
			continue
		}
		parts[i] = fmt.Sprintf("%s[%d]", s.CSS, s.Nth)
	}
	return strings.Join(parts, " > ")
}

func (l Locator) String() string {
	if l.Prop == "" {
		return l.Key()
	}
	return l.Key() + "@" + string(l.Prop)
}
