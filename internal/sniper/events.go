package sniper

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Kind names an outbound notification. The string is the wire "action".
type Kind string

const (
	KindSearched       Kind = "searched"
	KindBought         Kind = "bought"
	KindFailed         Kind = "failed"
	KindListed         Kind = "listed"
	KindFinished       Kind = "finished"
	KindIterationLimit Kind = "reached-iteration-limit"
	KindPurchaseLimit  Kind = "reached-purchase-limit"
	KindUpdateNames    Kind = "updateNames"
)

// NameEntry is one suggestion offered by the search field.
type NameEntry struct {
	Name   string `json:"name"`
	Rating string `json:"rating"`
}

// Event is a fire-and-forget notification for the external observer.
type Event struct {
	Kind    Kind        `json:"action"`
	RunID   string      `json:"runId,omitempty"`
	Name    string      `json:"name,omitempty"`
	Price   *Price      `json:"price,omitempty"`
	MinList *int        `json:"minList,omitempty"`
	MaxList *int        `json:"maxList,omitempty"`
	List    []NameEntry `json:"list,omitempty"`
	Time    time.Time   `json:"time"`
}

// Reporter delivers events. Emit must not block the caller for long and
// its outcome never influences the workflow.
type Reporter interface {
	Emit(ev Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ev Event)

func (f ReporterFunc) Emit(ev Event) { f(ev) }

// Reporters fans an event out to several reporters in order.
type Reporters []Reporter

func (rs Reporters) Emit(ev Event) {
	for _, r := range rs {
		if r != nil {
			r.Emit(ev)
		}
	}
}

// LogReporter writes every event to a zap logger.
type LogReporter struct {
	Log *zap.Logger
}

func (r LogReporter) Emit(ev Event) {
	fields := []zap.Field{zap.String("event", string(ev.Kind))}
	if ev.RunID != "" {
		fields = append(fields, zap.String("run_id", ev.RunID))
	}
	if ev.Name != "" {
		fields = append(fields, zap.String("name", ev.Name))
	}
	if ev.Price != nil {
		fields = append(fields, zap.Stringer("price", *ev.Price))
	}
	if ev.Kind == KindListed {
		fields = append(fields, zap.Intp("min_list", ev.MinList), zap.Intp("max_list", ev.MaxList))
	}
	if ev.Kind == KindUpdateNames {
		fields = append(fields, zap.Int("names", len(ev.List)))
	}
	r.Log.Info("event", fields...)
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Kinds returns the kinds of the recorded events in order.
func (r *Recorder) Kinds() []Kind {
	evs := r.Events()
	kinds := make([]Kind, len(evs))
	for i, ev := range evs {
		kinds[i] = ev.Kind
	}
	return kinds
}

// Count returns how many events of kind k were recorded.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, ev := range r.Events() {
		if ev.Kind == k {
			n++
		}
	}
	return n
}
