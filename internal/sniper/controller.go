package sniper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nbenliogludev/go-market-sniper/internal/actuator"
	"github.com/nbenliogludev/go-market-sniper/internal/delay"
	"github.com/nbenliogludev/go-market-sniper/internal/llm"
)

// Controller owns the session and chains workflow cycles for one run at a time.
type Controller struct {
	act      actuator.Actuator
	delay    delay.Scheduler
	reporter Reporter
	log      *zap.Logger

	session  *Session
	workflow *Workflow

	summarizer  llm.Client
	historySize int

	mu       sync.Mutex
	defaults Tunables
	reports  sync.WaitGroup
}

type Option func(*Controller)

// WithDefaults sets the tunables used for fields a start command leaves empty.
func WithDefaults(t Tunables) Option {
	return func(c *Controller) { c.defaults = t.WithDefaults(DefaultTunables()) }
}

// WithSummarizer enables the LLM summary in the run report.
func WithSummarizer(s llm.Client) Option {
	return func(c *Controller) { c.summarizer = s }
}

// WithHistorySize bounds the number of cycles kept for the run report.
func WithHistorySize(n int) Option {
	return func(c *Controller) { c.historySize = n }
}

func NewController(act actuator.Actuator, sched delay.Scheduler, rep Reporter, log *zap.Logger, opts ...Option) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if rep == nil {
		rep = Reporters(nil)
	}
	c := &Controller{
		act:      act,
		delay:    sched,
		reporter: rep,
		log:      log.Named("controller"),
		defaults: DefaultTunables(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.session = NewSession(c.defaults)
	c.workflow = NewWorkflow(act, sched, rep, c.session, log.Named("workflow"))
	return c
}

// Start begins a run with the target currently typed into the search field.
// It fails with ErrRunActive while a run is active or its last cycle has
// not settled.
func (c *Controller) Start(ctx context.Context, cmd StartCommand) error {
	if c.session.Busy() {
		c.log.Warn("start rejected, run already active")
		return ErrRunActive
	}

	target := ""
	if v, err := c.act.Read(ctx, SearchInput.Value()); err != nil {
		c.log.Warn("could not read search field", zap.Error(err))
	} else {
		target = v.Or("")
	}

	t, params, ok := cmd.Resolve(c.Defaults())
	if !ok {
		c.log.Warn("relist disabled, min and max list price are required")
	}

	run := Run{ID: uuid.NewString(), Target: target, Params: params}
	if _, err := c.session.begin(run, t); err != nil {
		c.log.Warn("start rejected, run already active")
		return err
	}

	c.log.Info("run started",
		zap.String("run_id", run.ID),
		zap.String("target", run.Target),
		zap.Float64("rpm", t.RPM),
		zap.Duration("search_result_delay", t.SearchResultDelay),
		zap.Duration("confirm_dialog_delay", t.ConfirmDialogDelay),
		zap.Duration("confirm_purchase_delay", t.ConfirmPurchaseDelay),
		zap.Bool("relist", params.Relist),
	)

	// The run outlives the request that started it.
	go c.loop(context.WithoutCancel(ctx), run, NewHistory(c.historySize))
	return nil
}

// loop runs cycles until the termination policy halts the run. A cycle
// starts only after the previous one has returned. hist belongs to this run.
func (c *Controller) loop(ctx context.Context, run Run, hist *History) {
	start := time.Now()
	for {
		verdict := c.session.checkTermination()
		if verdict != Continue {
			c.halt(run, hist, verdict, start)
			return
		}

		index := c.session.Iteration()
		outcome := c.workflow.Cycle(ctx, run, index)
		c.session.endCycle()
		hist.Add(index, outcome)
	}
}

func (c *Controller) halt(run Run, hist *History, verdict Termination, start time.Time) {
	iterations := c.session.Iteration()
	c.log.Info("run halted",
		zap.String("run_id", run.ID),
		zap.String("reason", verdict.String()),
		zap.Int("iterations", iterations),
	)
	c.reporter.Emit(Event{Kind: verdict.Kind(), RunID: run.ID, Time: time.Now()})

	c.reports.Add(1)
	c.session.release()
	go func() {
		defer c.reports.Done()
		c.report(run, hist, verdict, start, iterations)
	}()
}

// Stop requests the run to halt at the next cycle boundary. The cycle in
// flight runs to completion.
func (c *Controller) Stop() {
	if c.session.requestStop() {
		c.log.Info("stop requested")
	}
}

// UpdateParameter changes one tunable. The new value is seen by the next
// wait that depends on it, including waits of the current run.
func (c *Controller) UpdateParameter(name, value string) error {
	if err := c.session.setParam(Param(name), value); err != nil {
		c.log.Warn("parameter update rejected", zap.String("param", name), zap.String("value", value), zap.Error(err))
		return err
	}
	c.log.Info("parameter updated", zap.String("param", name), zap.String("value", value))
	return nil
}

// SetDefaults replaces the defaults used by the next start command.
func (c *Controller) SetDefaults(t Tunables) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaults = t.WithDefaults(DefaultTunables())
}

func (c *Controller) Defaults() Tunables {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defaults
}

// Wait blocks until the current chain has settled or ctx is done.
func (c *Controller) Wait(ctx context.Context) error {
	select {
	case <-c.session.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for run: %w", ctx.Err())
	}
}

// Shutdown stops the run, waits for it to settle and for its report.
func (c *Controller) Shutdown(ctx context.Context) error {
	c.Stop()
	if err := c.Wait(ctx); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		c.reports.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Join(errors.New("run report still pending"), ctx.Err())
	}
}

func (c *Controller) Status() Status {
	return c.session.Status()
}

func (c *Controller) Busy() bool {
	return c.session.Busy()
}
