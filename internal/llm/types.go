package llm

import "context"

// SummaryInput describes a finished run.
type SummaryInput struct {
	RunID      string
	Target     string
	ExitReason string
	Duration   string
	Iterations int
	Outcomes   map[string]int
	Spent      int
	Cycles     []string
}

type Client interface {
	SummarizeRun(ctx context.Context, input SummaryInput) (string, error)
}
