package sniper

// OutcomeKind classifies one cycle.
type OutcomeKind string

const (
	NoResult       OutcomeKind = "no-result"
	Unaffordable   OutcomeKind = "unaffordable"
	Purchased      OutcomeKind = "purchased"
	PurchaseFailed OutcomeKind = "purchase-failed"
)

// Outcome is produced once per cycle. Price is UnknownPrice unless a
// purchase dialog was read.
type Outcome struct {
	Kind  OutcomeKind
	Price Price
}

func noResult() Outcome     { return Outcome{Kind: NoResult, Price: UnknownPrice} }
func unaffordable() Outcome { return Outcome{Kind: Unaffordable, Price: UnknownPrice} }
