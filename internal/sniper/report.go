package sniper

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nbenliogludev/go-market-sniper/internal/llm"
)

const summaryTimeout = 30 * time.Second

// report logs the execution report of a halted run and, when a summarizer
// is configured, asks it for a human-readable summary.
func (c *Controller) report(run Run, hist *History, reason Termination, start time.Time, iterations int) {
	duration := time.Since(start).Truncate(time.Millisecond)

	counts := hist.Counts()
	outcomes := make(map[string]int, len(counts))
	for k, v := range counts {
		outcomes[string(k)] = v
	}
	cycles := hist.Lines()

	log := c.log.With(zap.String("run_id", run.ID))
	log.Info("run report",
		zap.String("target", run.Target),
		zap.Duration("duration", duration),
		zap.String("exit_reason", reason.String()),
		zap.Int("iterations", iterations),
		zap.Any("outcomes", outcomes),
		zap.Int("spent", hist.Spent()),
	)
	for _, line := range cycles {
		log.Debug("cycle", zap.String("trace", line))
	}

	if c.summarizer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), summaryTimeout)
	defer cancel()

	summary, err := c.summarizer.SummarizeRun(ctx, llm.SummaryInput{
		RunID:      run.ID,
		Target:     run.Target,
		ExitReason: reason.String(),
		Duration:   duration.String(),
		Iterations: iterations,
		Outcomes:   outcomes,
		Spent:      hist.Spent(),
		Cycles:     cycles,
	})
	if err != nil {
		log.Warn("failed to generate summary", zap.Error(err))
		return
	}
	log.Info("run summary", zap.String("summary", summary))
}
