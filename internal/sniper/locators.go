package sniper

import "github.com/nbenliogludev/go-market-sniper/internal/actuator"

// Controls of the transfer market search, results and dialogs.
// The numeric spinners are, in order: min bid, max bid, min buy now, max buy now.
var (
	SearchInput = actuator.Query("input.ut-text-input-control")

	numericSpinner = "div.ut-numeric-input-spinner-control"
	numericInput   = "input.ut-number-input-control"

	MinBidInput    = actuator.Nth(numericSpinner, 0).Find(numericInput)
	MinBuyNowInput = actuator.Nth(numericSpinner, 2).Find(numericInput)
	MaxBuyNowInput = actuator.Nth(numericSpinner, 3).Find(numericInput)

	IncrementButton = actuator.Query(".btn-standard.increment-value")
	SearchButton    = actuator.Query(".btn-standard.primary")

	ResultRow = actuator.Query("div.paginated-item-list.ut-pinned-list").
			Find("ul").
			Find("li.listFUTItem.has-auction-data.selected")
	WonRow    = actuator.Query("li.listFUTItem.has-auction-data.selected.won")
	BuyButton = actuator.Query("button.btn-standard.buyButton.currency-coins")

	ConfirmDialog  = actuator.Query("div.ea-dialog-view--body")
	ConfirmMessage = ConfirmDialog.Find("p.ea-dialog-view--msg")
	ConfirmButton  = ConfirmDialog.Find("button")

	QuickListPanel = actuator.Query("div.ut-quick-list-panel-view")
	MinListInput   = QuickListPanel.FindNth("input.ut-number-input-control.filled", 0)
	MaxListInput   = QuickListPanel.FindNth("input.ut-number-input-control.filled", 1)
	ListButton     = QuickListPanel.Find("button.btn-standard.primary")

	BackButton = actuator.Query(".ut-navigation-button-control")

	SuggestionList  = actuator.Query(".ut-button-group.playerResultsList")
	SuggestionItems = SuggestionList.Find(":scope > *")
)

// Suggestion addresses the i-th entry of the name suggestion list.
func Suggestion(i int) actuator.Locator {
	return SuggestionList.FindNth(":scope > *", i)
}
