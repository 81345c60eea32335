package panel

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/nbenliogludev/go-market-sniper/internal/sniper"
)

// Inbound actions sent by a panel client.
const (
	ActionStartSearch          = "startSearch"
	ActionStopSearch           = "stopSearch"
	ActionInputChange          = "inputChange"
	ActionPlayerSelected       = "playerSelected"
	ActionMinBuyNowChange      = "minBuyNowChange"
	ActionMaxBuyNowChange      = "maxBuyNowChange"
	ActionRPMChange            = "rpmChange"
	ActionSearchResultDelay    = "searchResultDelay"
	ActionConfirmDialogDelay   = "confirmDialogDelay"
	ActionConfirmPurchaseDelay = "confirmPurchaseDelay"
	ActionLogElements          = "logElements"
	ActionStatus               = "status"
)

// Replies addressed to the requesting client only.
const (
	ReplyError    = "error"
	ReplyElements = "elements"
	ReplyStatus   = "status"
)

// Command is one inbound message. Start fields sit next to the action, as
// the browser popup sends them.
type Command struct {
	Action string          `json:"action"`
	Value  json.RawMessage `json:"value,omitempty"`
	sniper.StartCommand
}

// ValueString returns Value as text whether it was sent as a string or a number.
func (c Command) ValueString() string {
	raw := strings.TrimSpace(string(c.Value))
	if raw == "" || raw == "null" {
		return ""
	}
	if strings.HasPrefix(raw, `"`) {
		if s, err := strconv.Unquote(raw); err == nil {
			return s
		}
		var s string
		if err := json.Unmarshal(c.Value, &s); err == nil {
			return s
		}
	}
	return raw
}

// Reply answers a single client.
type Reply struct {
	Action  string         `json:"action"`
	Request string         `json:"request,omitempty"`
	Error   string         `json:"error,omitempty"`
	Dump    string         `json:"dump,omitempty"`
	Status  *sniper.Status `json:"status,omitempty"`
}

// tunableActions maps parameter-update actions onto tunable names.
var tunableActions = map[string]sniper.Param{
	ActionRPMChange:            sniper.ParamRPM,
	ActionSearchResultDelay:    sniper.ParamSearchResultDelay,
	ActionConfirmDialogDelay:   sniper.ParamConfirmDialogDelay,
	ActionConfirmPurchaseDelay: sniper.ParamConfirmPurchaseDelay,
}
