package sniper

import (
	"fmt"
	"sync"
	"time"
)

// CycleRecord is one completed cycle.
type CycleRecord struct {
	Iteration int
	Outcome   Outcome
	At        time.Time
}

func (r CycleRecord) String() string {
	if r.Outcome.Price.Known() {
		return fmt.Sprintf("cycle=%d outcome=%s price=%s", r.Iteration, r.Outcome.Kind, r.Outcome.Price)
	}
	return fmt.Sprintf("cycle=%d outcome=%s", r.Iteration, r.Outcome.Kind)
}

// History keeps per-outcome totals for one run and its most recent cycles.
type History struct {
	mu     sync.Mutex
	recent []CycleRecord
	max    int
	counts map[OutcomeKind]int
	spent  int
}

func NewHistory(max int) *History {
	if max <= 0 {
		max = 20
	}
	return &History{max: max, counts: make(map[OutcomeKind]int)}
}

func (h *History) Add(iteration int, o Outcome) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.counts[o.Kind]++
	if o.Kind == Purchased && o.Price.Known() {
		h.spent += int(o.Price)
	}

	h.recent = append(h.recent, CycleRecord{Iteration: iteration, Outcome: o, At: time.Now()})
	if len(h.recent) > h.max {
		h.recent = h.recent[len(h.recent)-h.max:]
	}
}

// Counts returns cycles per outcome.
func (h *History) Counts() map[OutcomeKind]int {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[OutcomeKind]int, len(h.counts))
	for k, v := range h.counts {
		out[k] = v
	}
	return out
}

// Spent is the sum of known prices of confirmed purchases.
func (h *History) Spent() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.spent
}

// Lines renders the most recent cycles, oldest first.
func (h *History) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	lines := make([]string, len(h.recent))
	for i, r := range h.recent {
		lines[i] = r.String()
	}
	return lines
}
