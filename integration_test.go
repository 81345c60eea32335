package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nbenliogludev/go-market-sniper/internal/actuator"
	"github.com/nbenliogludev/go-market-sniper/internal/browser"
	"github.com/nbenliogludev/go-market-sniper/internal/delay"
	"github.com/nbenliogludev/go-market-sniper/internal/sniper"
)

func startMarket(t *testing.T) (*browser.Manager, *sniper.Recorder, *sniper.Controller) {
	t.Helper()
	if os.Getenv("SNIPER_E2E") != "1" {
		t.Skip("set SNIPER_E2E=1 to run browser tests")
	}

	srv := httptest.NewServer(http.FileServer(http.Dir("testdata")))
	t.Cleanup(srv.Close)

	m, err := browser.NewManager(browser.Options{Headless: true})
	require.NoError(t, err)
	t.Cleanup(m.Close)

	require.NoError(t, m.Navigate(srv.URL+"/market.html", 30*time.Second))

	events := &sniper.Recorder{}
	ctrl := sniper.NewController(
		actuator.NewCDP(m.Ctx, 5*time.Second),
		delay.Clock{},
		events,
		zaptest.NewLogger(t),
		sniper.WithDefaults(sniper.Tunables{RPM: 600, SearchResultDelay: 200 * time.Millisecond, ConfirmPurchaseDelay: 200 * time.Millisecond}),
	)
	return m, events, ctrl
}

func TestMarketRunAgainstBrowser(t *testing.T) {
	_, events, ctrl := startMarket(t)

	require.NoError(t, ctrl.Start(context.Background(), sniper.StartCommand{
		SearchLimit: sniper.NumberOf(2),
		Relist:      true,
		MinList:     sniper.NumberOf(1400),
		MaxList:     sniper.NumberOf(1700),
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, ctrl.Shutdown(ctx))

	assert.Equal(t, []sniper.Kind{
		sniper.KindBought, sniper.KindListed, sniper.KindSearched,
		sniper.KindBought, sniper.KindListed, sniper.KindSearched,
		sniper.KindIterationLimit,
	}, events.Kinds())

	bought := events.Events()[0]
	assert.Equal(t, "Kylian Mbappé", bought.Name)
	require.NotNil(t, bought.Price)
	assert.Equal(t, sniper.Price(1250), *bought.Price)
}

func TestMarketNamesAgainstBrowser(t *testing.T) {
	m, _, ctrl := startMarket(t)

	names, err := ctrl.QueryNames(context.Background(), "mbap")
	require.NoError(t, err)
	assert.Equal(t, []sniper.NameEntry{
		{Name: "Kylian Mbappé", Rating: "91"},
		{Name: "Ethan Mbappé", Rating: "64"},
	}, names)

	dump, err := m.Dump(context.Background())
	require.NoError(t, err)
	assert.Contains(t, dump, "Title: Transfer Market")
	assert.Contains(t, dump, `value="mbap"`)
}
