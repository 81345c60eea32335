package sniper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryKeepsRecentCycles(t *testing.T) {
	h := NewHistory(2)
	h.Add(0, noResult())
	h.Add(1, Outcome{Kind: Purchased, Price: 900})
	h.Add(2, Outcome{Kind: PurchaseFailed, Price: 950})

	assert.Equal(t, []string{
		"cycle=1 outcome=purchased price=900",
		"cycle=2 outcome=purchase-failed price=950",
	}, h.Lines())
	assert.Equal(t, map[OutcomeKind]int{NoResult: 1, Purchased: 1, PurchaseFailed: 1}, h.Counts())
	assert.Equal(t, 900, h.Spent())
}

func TestHistoryUnknownPriceNotSpent(t *testing.T) {
	h := NewHistory(0)
	h.Add(0, Outcome{Kind: Purchased, Price: UnknownPrice})
	assert.Zero(t, h.Spent())
	assert.Equal(t, []string{"cycle=0 outcome=purchased"}, h.Lines())
}
