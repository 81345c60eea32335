package sniper

import (
	"sync"
	"time"
)

// Termination is the verdict of the policy evaluated before each cycle.
type Termination int

const (
	Continue Termination = iota
	Finished
	IterationLimitReached
	PurchaseLimitReached
)

func (t Termination) String() string {
	switch t {
	case Continue:
		return "continue"
	case Finished:
		return string(KindFinished)
	case IterationLimitReached:
		return string(KindIterationLimit)
	case PurchaseLimitReached:
		return string(KindPurchaseLimit)
	default:
		return "unknown"
	}
}

// Kind is the event announcing this termination.
func (t Termination) Kind() Kind {
	switch t {
	case IterationLimitReached:
		return KindIterationLimit
	case PurchaseLimitReached:
		return KindPurchaseLimit
	default:
		return KindFinished
	}
}

// Run identifies one start-to-finish execution.
type Run struct {
	ID     string
	Target string
	Params RunParams
}

// Status is a point-in-time copy of the session.
type Status struct {
	Active    bool      `json:"active"`
	InFlight  bool      `json:"inFlight"`
	RunID     string    `json:"runId,omitempty"`
	Target    string    `json:"target"`
	Iteration int       `json:"iteration"`
	Purchases int       `json:"purchases"`
	Tunables  Tunables  `json:"tunables"`
	StartedAt time.Time `json:"startedAt,omitempty"`
}

// Session is the single mutable state of the controller. active is the
// cancellation flag; inFlight stays true until the chain has fully settled.
// paging is held by a one-off page command and excludes a run.
type Session struct {
	mu        sync.Mutex
	active    bool
	inFlight  bool
	paging    bool
	run       Run
	iteration int
	purchases int
	tunables  Tunables
	startedAt time.Time
	done      chan struct{}
}

func NewSession(t Tunables) *Session {
	done := make(chan struct{})
	close(done)
	return &Session{tunables: t, done: done}
}

// Busy reports whether the page is owned by a run, a chain that has not
// settled yet, or a page command.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active || s.inFlight || s.paging
}

// begin opens a run. It fails with ErrRunActive while another chain exists
// or a page command holds the page.
func (s *Session) begin(run Run, t Tunables) (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active || s.inFlight || s.paging {
		return nil, ErrRunActive
	}
	s.active = true
	s.inFlight = true
	s.run = run
	s.iteration = 0
	s.purchases = 0
	s.tunables = t
	s.startedAt = time.Now()
	s.done = make(chan struct{})
	return s.done, nil
}

// claimPage reserves the page for a page command until releasePage.
func (s *Session) claimPage() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.active || s.inFlight:
		return ErrRunActive
	case s.paging:
		return ErrPageBusy
	}
	s.paging = true
	return nil
}

func (s *Session) releasePage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paging = false
}

// requestStop clears the active flag and reports whether it was set.
func (s *Session) requestStop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.active
	s.active = false
	return was
}

// checkTermination applies the termination policy. A halting verdict
// clears active, and the purchase counter reset happens under the same
// lock as the check.
func (s *Session) checkTermination() Termination {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case !s.active:
		return Finished
	case s.run.Params.IterationLimit.Reached(s.iteration):
		s.active = false
		return IterationLimitReached
	case s.run.Params.PurchaseLimit.Reached(s.purchases):
		s.purchases = 0
		s.active = false
		return PurchaseLimitReached
	default:
		return Continue
	}
}

// endCycle counts a completed cycle.
func (s *Session) endCycle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.iteration++
}

// recordPurchase counts a confirmed purchase.
func (s *Session) recordPurchase() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purchases++
	return s.purchases
}

// release marks the chain as settled and wakes waiters.
func (s *Session) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	if s.inFlight {
		s.inFlight = false
		close(s.done)
	}
}

// Done is closed once the current (or last) chain has settled.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Session) Iteration() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.iteration
}

func (s *Session) Purchases() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purchases
}

func (s *Session) Tunables() Tunables {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tunables
}

func (s *Session) setParam(name Param, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tunables.set(name, raw)
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Active:    s.active,
		InFlight:  s.inFlight,
		RunID:     s.run.ID,
		Target:    s.run.Target,
		Iteration: s.iteration,
		Purchases: s.purchases,
		Tunables:  s.tunables,
		StartedAt: s.startedAt,
	}
}
