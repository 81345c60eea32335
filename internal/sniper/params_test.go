package sniper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartCommandFromPanel(t *testing.T) {
	raw := `{
		"rpm": "",
		"searchResultDelay": "300",
		"confirmDialogDelay": null,
		"searchLimit": "5",
		"purchaseLimit": 2,
		"relist": true,
		"minList": 1000,
		"maxList": "1500"
	}`

	var cmd StartCommand
	require.NoError(t, json.Unmarshal([]byte(raw), &cmd))

	tun, params, ok := cmd.Resolve(DefaultTunables())
	assert.True(t, ok)
	assert.Equal(t, Tunables{
		RPM:                  DefaultRPM,
		SearchResultDelay:    300 * time.Millisecond,
		ConfirmDialogDelay:   DefaultConfirmDialogDelay,
		ConfirmPurchaseDelay: DefaultConfirmPurchaseDelay,
	}, tun)
	assert.Equal(t, RunParams{
		IterationLimit: Limit{N: 5, Set: true},
		PurchaseLimit:  Limit{N: 2, Set: true},
		Relist:         true,
		MinList:        1000,
		MaxList:        1500,
	}, params)
}

func TestStartCommandRejectsGarbage(t *testing.T) {
	var cmd StartCommand
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"rpm":"fast"}`), &cmd), ErrInvalidValue)
}

func TestResolveWithoutLimits(t *testing.T) {
	_, params, ok := StartCommand{}.Resolve(DefaultTunables())
	assert.True(t, ok)
	assert.False(t, params.IterationLimit.Set)
	assert.False(t, params.PurchaseLimit.Set)
	assert.False(t, params.Relist)
}

func TestResolveRelist(t *testing.T) {
	_, params, ok := StartCommand{Checked: true, MaxList: NumberOf(900)}.Resolve(DefaultTunables())
	assert.False(t, ok)
	assert.False(t, params.Relist)

	_, params, ok = StartCommand{MinList: NumberOf(700), MaxList: NumberOf(900)}.Resolve(DefaultTunables())
	assert.True(t, ok)
	assert.False(t, params.Relist, "bounds alone do not enable relisting")
}

func TestResolveNegativeRate(t *testing.T) {
	tun, _, _ := StartCommand{RPM: NumberOf(-3)}.Resolve(DefaultTunables())
	assert.Equal(t, DefaultRPM, tun.RPM)
}

func TestLimitReached(t *testing.T) {
	assert.False(t, Limit{}.Reached(1000))
	assert.True(t, Limit{N: 0, Set: true}.Reached(0))
	assert.False(t, Limit{N: 3, Set: true}.Reached(2))
	assert.True(t, Limit{N: 3, Set: true}.Reached(3))
}

func TestTunablesSetTargetsOwnField(t *testing.T) {
	for _, p := range Params {
		tun := DefaultTunables()
		require.NoError(t, tun.set(p, "7"))

		want := DefaultTunables()
		switch p {
		case ParamRPM:
			want.RPM = 7
		case ParamSearchResultDelay:
			want.SearchResultDelay = 7 * time.Millisecond
		case ParamConfirmDialogDelay:
			want.ConfirmDialogDelay = 7 * time.Millisecond
		case ParamConfirmPurchaseDelay:
			want.ConfirmPurchaseDelay = 7 * time.Millisecond
		}
		assert.Equal(t, want, tun, string(p))
	}
}

func TestTunablesValues(t *testing.T) {
	v := DefaultTunables().Values()
	assert.Equal(t, map[Param]string{
		ParamRPM:                  "60",
		ParamSearchResultDelay:    "250",
		ParamConfirmDialogDelay:   "80",
		ParamConfirmPurchaseDelay: "800",
	}, v)
}

func TestNumberMarshal(t *testing.T) {
	b, err := json.Marshal(struct {
		A Number `json:"a"`
		B Number `json:"b"`
	}{A: NumberOf(1.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.5,"b":null}`, string(b))
}
