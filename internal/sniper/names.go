package sniper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nbenliogludev/go-market-sniper/internal/actuator"
)

const (
	// NamesSettleDelay lets the suggestion list render after typing.
	NamesSettleDelay = 1000 * time.Millisecond
	// SelectSettleDelay lets the suggestion list render before picking the first entry.
	SelectSettleDelay = 1500 * time.Millisecond
)

var (
	suggestionName   = ".btn-text"
	suggestionRating = ".btn-subtext"
)

// QueryNames types fragment into the search field and reports the
// suggestions the page offers. It holds the page until it returns and is
// rejected while a run or another page command owns it.
func (c *Controller) QueryNames(ctx context.Context, fragment string) ([]NameEntry, error) {
	if err := c.session.claimPage(); err != nil {
		c.log.Warn("name query rejected", zap.String("fragment", fragment), zap.Error(err))
		return nil, err
	}
	defer c.session.releasePage()

	ok, err := c.act.Write(ctx, SearchInput, fragment)
	if err != nil {
		return nil, fmt.Errorf("write search field: %w", err)
	}
	if !ok {
		c.log.Warn("search field not found")
	}

	c.delay.After(NamesSettleDelay)

	n, err := c.act.Count(ctx, SuggestionItems)
	if err != nil {
		return nil, fmt.Errorf("count suggestions: %w", err)
	}

	names := make([]NameEntry, 0, n)
	for i := 0; i < n; i++ {
		item := Suggestion(i)
		name, err := c.act.Read(ctx, item.Find(suggestionName))
		if err != nil {
			return nil, fmt.Errorf("read suggestion %d: %w", i, err)
		}
		rating, err := c.act.Read(ctx, item.Find(suggestionRating))
		if err != nil {
			return nil, fmt.Errorf("read suggestion %d rating: %w", i, err)
		}
		if name.IsAbsent() {
			continue
		}
		names = append(names, NameEntry{
			Name:   strings.TrimSpace(name.Or("")),
			Rating: strings.TrimSpace(rating.Or("")),
		})
	}

	c.log.Info("names found", zap.String("fragment", fragment), zap.Int("count", len(names)))
	c.reporter.Emit(Event{Kind: KindUpdateNames, List: names, Time: time.Now()})
	return names, nil
}

// SelectName types name into the search field and picks the first suggestion.
func (c *Controller) SelectName(ctx context.Context, name string) error {
	if err := c.session.claimPage(); err != nil {
		c.log.Warn("name selection rejected", zap.String("name", name), zap.Error(err))
		return err
	}
	defer c.session.releasePage()

	if ok, err := c.act.Write(ctx, SearchInput, name); err != nil {
		return fmt.Errorf("write search field: %w", err)
	} else if !ok {
		c.log.Warn("search field not found")
	}

	c.delay.After(SelectSettleDelay)

	ok, err := c.act.Press(ctx, Suggestion(0))
	if err != nil {
		return fmt.Errorf("press suggestion: %w", err)
	}
	if !ok {
		c.log.Warn("no suggestion to select", zap.String("name", name))
		return nil
	}
	c.log.Info("name selected", zap.String("name", name))
	return nil
}

// Bound selects one of the buy-now price filters.
type Bound int

const (
	MinBuyNow Bound = iota
	MaxBuyNow
)

func (b Bound) String() string {
	if b == MinBuyNow {
		return "min buy now"
	}
	return "max buy now"
}

// SetBuyNowBound writes value into the min or max buy-now filter.
func (c *Controller) SetBuyNowBound(ctx context.Context, b Bound, value string) error {
	loc := MinBuyNowInput
	if b == MaxBuyNow {
		loc = MaxBuyNowInput
	}
	return c.writeFilter(ctx, loc, b.String(), value)
}

func (c *Controller) writeFilter(ctx context.Context, loc actuator.Locator, label, value string) error {
	ok, err := c.act.Write(ctx, loc, value)
	if err != nil {
		return fmt.Errorf("write %s: %w", label, err)
	}
	if !ok {
		c.log.Warn("filter input not found", zap.String("filter", label))
		return nil
	}
	c.log.Info("filter updated", zap.String("filter", label), zap.String("value", value))
	return nil
}
