// Package actuator reads and mutates the driven page. Its operations are
// pure side effects: they never wait, never retry, and report a missing
// element as Absent instead of an error. Errors are reserved for transport
// failures such as a closed tab.
package actuator

import (
	"context"
)

// Value is the result of a read: either Found(v) or Absent.
type Value struct {
	v     string
	found bool
}

// Absent is the result of reading an element that is not rendered.
var Absent = Value{}

// Found wraps a value that was read from a present element.
func Found(v string) Value {
	return Value{v: v, found: true}
}

// Get returns the value and whether the element was present.
func (v Value) Get() (string, bool) {
	return v.v, v.found
}

func (v Value) IsAbsent() bool { return !v.found }

// Or returns the value, or def when absent.
func (v Value) Or(def string) string {
	if !v.found {
		return def
	}
	return v.v
}

// True reports a present element whose value is "true".
func (v Value) True() bool {
	return v.found && v.v == "true"
}

func (v Value) String() string {
	if !v.found {
		return "<absent>"
	}
	return v.v
}

// Actuator is the capability to drive one page.
type Actuator interface {
	// Read returns the property selected by loc.Prop (text by default).
	Read(ctx context.Context, loc Locator) (Value, error)
	// Count returns how many elements match the last step of loc below
	// the element addressed by the preceding steps; 0 when that parent is absent.
	Count(ctx context.Context, loc Locator) (int, error)
	// Write sets the value and dispatches input and change events.
	// It reports false when the element is absent.
	Write(ctx context.Context, loc Locator, value string) (bool, error)
	// Press dispatches mousedown and mouseup on the element.
	// It reports false when the element is absent.
	Press(ctx context.Context, loc Locator) (bool, error)
}
