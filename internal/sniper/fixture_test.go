package sniper

import (
	"time"

	"github.com/nbenliogludev/go-market-sniper/internal/actuator/actuatortest"
)

const confirmText = "Are you sure you want to buy this item for 1,250?"

// searchScreen renders the controls present before any result shows up.
func searchScreen(target string) *actuatortest.Page {
	p := actuatortest.New()
	p.Set(SearchInput, actuatortest.Element{Value: target})
	p.Set(MinBidInput, actuatortest.Element{})
	p.Set(MinBuyNowInput, actuatortest.Element{})
	p.Set(MaxBuyNowInput, actuatortest.Element{})
	p.Set(IncrementButton, actuatortest.Element{})
	p.Set(SearchButton, actuatortest.Element{})
	p.Set(BackButton, actuatortest.Element{})
	return p
}

// withResult adds a result row and a buy button.
func withResult(p *actuatortest.Page, affordable bool) *actuatortest.Page {
	p.Set(ResultRow, actuatortest.Element{})
	p.Set(BuyButton, actuatortest.Element{Disabled: !affordable})
	return p
}

// withDialog adds the confirmation dialog. When win is set, confirming
// marks the row as won.
func withDialog(p *actuatortest.Page, text string, win bool) *actuatortest.Page {
	p.Set(ConfirmDialog, actuatortest.Element{})
	p.Set(ConfirmMessage, actuatortest.Element{Text: text})
	confirm := actuatortest.Element{}
	if win {
		confirm.OnPress = func(p *actuatortest.Page) {
			p.Set(WonRow, actuatortest.Element{})
		}
	}
	p.Set(ConfirmButton, confirm)
	return p
}

func withQuickList(p *actuatortest.Page) *actuatortest.Page {
	p.Set(QuickListPanel, actuatortest.Element{})
	p.Set(MinListInput, actuatortest.Element{})
	p.Set(MaxListInput, actuatortest.Element{})
	p.Set(ListButton, actuatortest.Element{})
	return p
}

func purchasePage(target string) *actuatortest.Page {
	return withDialog(withResult(searchScreen(target), true), confirmText, true)
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
