package sniper

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/nbenliogludev/go-market-sniper/internal/actuator"
	"github.com/nbenliogludev/go-market-sniper/internal/delay"
)

const (
	// MinBidBaseline is written into the min bid field every BidResetEvery cycles.
	MinBidBaseline = 150
	BidResetEvery  = 10

	// SettleDelay lets the result screen render its back button.
	SettleDelay = 300 * time.Millisecond
)

// Workflow runs one search/purchase cycle against the page.
type Workflow struct {
	act      actuator.Actuator
	delay    delay.Scheduler
	reporter Reporter
	session  *Session
	log      *zap.Logger
}

func NewWorkflow(act actuator.Actuator, sched delay.Scheduler, rep Reporter, s *Session, log *zap.Logger) *Workflow {
	return &Workflow{act: act, delay: sched, reporter: rep, session: s, log: log}
}

// Cycle performs one full pass. Whatever branch is taken, the cycle ends
// with the return-to-search tail: settle, back, searched, rate pause.
func (w *Workflow) Cycle(ctx context.Context, run Run, index int) Outcome {
	log := w.log.With(zap.String("run_id", run.ID), zap.Int("iteration", index))

	outcome := w.attempt(ctx, run, index, log)
	w.returnToSearch(ctx, run, log)
	return outcome
}

func (w *Workflow) attempt(ctx context.Context, run Run, index int, log *zap.Logger) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("cycle aborted", zap.Any("panic", r))
			out = noResult()
		}
	}()

	w.adjustBid(ctx, index, log)

	if !w.press(ctx, SearchButton, log) {
		log.Warn("search button not found")
	}

	w.delay.After(w.session.Tunables().SearchResultDelay)

	if w.read(ctx, ResultRow, log).IsAbsent() {
		return noResult()
	}

	// An absent buy button is treated like a disabled one.
	if disabled := w.read(ctx, BuyButton.Disabled(), log); disabled.IsAbsent() || disabled.True() {
		log.Info("buy button disabled, cannot afford item")
		return unaffordable()
	}

	return w.purchase(ctx, run, log)
}

func (w *Workflow) adjustBid(ctx context.Context, index int, log *zap.Logger) {
	if index%BidResetEvery == 0 {
		if !w.write(ctx, MinBidInput, strconv.Itoa(MinBidBaseline), log) {
			log.Debug("min bid input not found")
		}
		return
	}
	if !w.press(ctx, IncrementButton, log) {
		log.Debug("increment button not found")
	}
}

func (w *Workflow) purchase(ctx context.Context, run Run, log *zap.Logger) Outcome {
	w.press(ctx, BuyButton, log)

	w.delay.After(w.session.Tunables().ConfirmDialogDelay)

	if w.read(ctx, ConfirmDialog, log).IsAbsent() {
		// no dialog: the attempt counts as failed with an unknown price
		log.Error("confirm dialog not found after pressing buy")
		w.emit(Event{Kind: KindFailed, RunID: run.ID, Name: run.Target, Price: pricePtr(UnknownPrice)})
		return Outcome{Kind: PurchaseFailed, Price: UnknownPrice}
	}

	price := ParsePrice(w.read(ctx, ConfirmMessage, log).Or(""))
	if !price.Known() {
		log.Warn("no price in confirm dialog")
	}

	if !w.press(ctx, ConfirmButton, log) {
		log.Error("could not find confirm purchase button")
	}

	w.delay.After(w.session.Tunables().ConfirmPurchaseDelay)

	if w.read(ctx, WonRow, log).IsAbsent() {
		w.emit(Event{Kind: KindFailed, RunID: run.ID, Name: run.Target, Price: pricePtr(price)})
		return Outcome{Kind: PurchaseFailed, Price: price}
	}

	n := w.session.recordPurchase()
	log.Info("item bought", zap.Stringer("price", price), zap.Int("purchases", n))
	w.emit(Event{Kind: KindBought, RunID: run.ID, Name: run.Target, Price: pricePtr(price)})

	if run.Params.Relist {
		w.relist(ctx, run, log)
	}
	return Outcome{Kind: Purchased, Price: price}
}

func (w *Workflow) relist(ctx context.Context, run Run, log *zap.Logger) {
	p := run.Params
	if !w.press(ctx, QuickListPanel, log) {
		log.Warn("quick list panel not found, item not listed")
		return
	}
	if !w.write(ctx, MinListInput, strconv.Itoa(p.MinList), log) {
		log.Warn("min list input not found")
	}
	if !w.write(ctx, MaxListInput, strconv.Itoa(p.MaxList), log) {
		log.Warn("max list input not found")
	}
	if !w.press(ctx, ListButton, log) {
		log.Warn("list button not found, item not listed")
		return
	}
	w.emit(Event{Kind: KindListed, RunID: run.ID, Name: run.Target, MinList: intPtr(p.MinList), MaxList: intPtr(p.MaxList)})
}

func intPtr(n int) *int { return &n }

func (w *Workflow) returnToSearch(ctx context.Context, run Run, log *zap.Logger) {
	w.delay.After(SettleDelay)

	w.press(ctx, BackButton, log)

	w.emit(Event{Kind: KindSearched, RunID: run.ID})

	w.delay.After(RatePause(w.session.Tunables().RPM))
}

func (w *Workflow) emit(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	w.reporter.Emit(ev)
}

// read, write and press fold transport errors into absence.

func (w *Workflow) read(ctx context.Context, loc actuator.Locator, log *zap.Logger) actuator.Value {
	v, err := w.act.Read(ctx, loc)
	if err != nil {
		log.Warn("read failed", zap.Stringer("locator", loc), zap.Error(err))
		return actuator.Absent
	}
	return v
}

func (w *Workflow) write(ctx context.Context, loc actuator.Locator, value string, log *zap.Logger) bool {
	ok, err := w.act.Write(ctx, loc, value)
	if err != nil {
		log.Warn("write failed", zap.Stringer("locator", loc), zap.Error(err))
		return false
	}
	return ok
}

func (w *Workflow) press(ctx context.Context, loc actuator.Locator, log *zap.Logger) bool {
	ok, err := w.act.Press(ctx, loc)
	if err != nil {
		log.Warn("press failed", zap.Stringer("locator", loc), zap.Error(err))
		return false
	}
	return ok
}
