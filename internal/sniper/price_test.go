package sniper

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := map[string]Price{
		"Are you sure you want to buy this item for 1,250?":     1250,
		"Are you sure you want to buy this item for 12,500?":    12500,
		"Are you sure you want to buy this item for 1,000,000?": 1000000,
		"Buy for 900 coins":                                     900,
		"Buy now?":                                              UnknownPrice,
		"":                                                      UnknownPrice,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParsePrice(in), in)
	}
}

func TestPriceJSON(t *testing.T) {
	b, err := json.Marshal(Event{Kind: KindFailed, Price: pricePtr(UnknownPrice)})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"price":null`)
	assert.Contains(t, string(b), `"action":"failed"`)

	b, err = json.Marshal(Event{Kind: KindBought, Name: "Mbappé", Price: pricePtr(1250)})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"price":1250`)

	var p Price
	require.NoError(t, json.Unmarshal([]byte("null"), &p))
	assert.Equal(t, UnknownPrice, p)
	assert.Equal(t, "unknown", p.String())
}

func TestRatePause(t *testing.T) {
	assert.Equal(t, time.Second, RatePause(60))
	assert.Equal(t, 2*time.Second, RatePause(30))
	assert.Equal(t, 500*time.Millisecond, RatePause(120))
	assert.Equal(t, time.Second, RatePause(0))
	assert.Equal(t, time.Second, RatePause(-1))
	assert.Equal(t, time.Second, RatePause(math.NaN()))
	assert.Equal(t, time.Second, RatePause(math.Inf(1)))
}
