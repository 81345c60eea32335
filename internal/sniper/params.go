package sniper

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultRPM                  = 60.0
	DefaultSearchResultDelay    = 250 * time.Millisecond
	DefaultConfirmDialogDelay   = 80 * time.Millisecond
	DefaultConfirmPurchaseDelay = 800 * time.Millisecond
)

var (
	ErrRunActive        = errors.New("a run is already active")
	ErrPageBusy         = errors.New("page is busy with another command")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrInvalidValue     = errors.New("invalid value")
)

// Param names a tunable that may change mid-run.
type Param string

const (
	ParamRPM                  Param = "rpm"
	ParamSearchResultDelay    Param = "searchResultDelay"
	ParamConfirmDialogDelay   Param = "confirmDialogDelay"
	ParamConfirmPurchaseDelay Param = "confirmPurchaseDelay"
)

// Params lists every tunable in a stable order.
var Params = []Param{ParamRPM, ParamSearchResultDelay, ParamConfirmDialogDelay, ParamConfirmPurchaseDelay}

// Tunables are read at the start of each dependent wait.
type Tunables struct {
	RPM                  float64       `yaml:"rpm" json:"rpm"`
	SearchResultDelay    time.Duration `yaml:"search_result_delay" json:"searchResultDelay"`
	ConfirmDialogDelay   time.Duration `yaml:"confirm_dialog_delay" json:"confirmDialogDelay"`
	ConfirmPurchaseDelay time.Duration `yaml:"confirm_purchase_delay" json:"confirmPurchaseDelay"`
}

func DefaultTunables() Tunables {
	return Tunables{
		RPM:                  DefaultRPM,
		SearchResultDelay:    DefaultSearchResultDelay,
		ConfirmDialogDelay:   DefaultConfirmDialogDelay,
		ConfirmPurchaseDelay: DefaultConfirmPurchaseDelay,
	}
}

// WithDefaults replaces every non-positive field with the matching field of def.
func (t Tunables) WithDefaults(def Tunables) Tunables {
	if !(t.RPM > 0) {
		t.RPM = def.RPM
	}
	if t.SearchResultDelay <= 0 {
		t.SearchResultDelay = def.SearchResultDelay
	}
	if t.ConfirmDialogDelay <= 0 {
		t.ConfirmDialogDelay = def.ConfirmDialogDelay
	}
	if t.ConfirmPurchaseDelay <= 0 {
		t.ConfirmPurchaseDelay = def.ConfirmPurchaseDelay
	}
	return t
}

// Values renders the tunables the way a parameter update carries them:
// rpm as a number, delays in milliseconds.
func (t Tunables) Values() map[Param]string {
	return map[Param]string{
		ParamRPM:                  strconv.FormatFloat(t.RPM, 'g', -1, 64),
		ParamSearchResultDelay:    strconv.FormatInt(t.SearchResultDelay.Milliseconds(), 10),
		ParamConfirmDialogDelay:   strconv.FormatInt(t.ConfirmDialogDelay.Milliseconds(), 10),
		ParamConfirmPurchaseDelay: strconv.FormatInt(t.ConfirmPurchaseDelay.Milliseconds(), 10),
	}
}

// set applies one update. rpm must be positive; delays are non-negative
// milliseconds.
func (t *Tunables) set(name Param, raw string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w for %s: %q", ErrInvalidValue, name, raw)
	}
	switch name {
	case ParamRPM:
		if v <= 0 {
			return fmt.Errorf("%w for %s: must be positive", ErrInvalidValue, name)
		}
		t.RPM = v
		return nil
	case ParamSearchResultDelay, ParamConfirmDialogDelay, ParamConfirmPurchaseDelay:
		if v < 0 {
			return fmt.Errorf("%w for %s: must not be negative", ErrInvalidValue, name)
		}
		d := time.Duration(v * float64(time.Millisecond))
		switch name {
		case ParamSearchResultDelay:
			t.SearchResultDelay = d
		case ParamConfirmDialogDelay:
			t.ConfirmDialogDelay = d
		default:
			t.ConfirmPurchaseDelay = d
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
}

// Number is an optional numeric field. Panels send numbers, numeric
// strings, "" or null; the last two leave the field unset.
type Number struct {
	v   float64
	set bool
}

// NumberOf returns a set Number.
func NumberOf(v float64) Number { return Number{v: v, set: true} }

func (n Number) Get() (float64, bool) { return n.v, n.set }

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = Number{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			*n = Number{}
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	*n = NumberOf(v)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.v)
}

// StartCommand is the payload of a start request.
type StartCommand struct {
	RPM                  Number `json:"rpm"`
	SearchResultDelay    Number `json:"searchResultDelay"`
	ConfirmDialogDelay   Number `json:"confirmDialogDelay"`
	ConfirmPurchaseDelay Number `json:"confirmPurchaseDelay"`
	SearchLimit          Number `json:"searchLimit"`
	PurchaseLimit        Number `json:"purchaseLimit"`
	Relist               bool   `json:"relist"`
	// Checked is the relist key used by the browser popup.
	Checked bool   `json:"checked,omitempty"`
	MinList Number `json:"minList"`
	MaxList Number `json:"maxList"`
}

// Limit is an optional counter bound.
type Limit struct {
	N   int
	Set bool
}

// Reached reports whether count has hit a configured bound.
func (l Limit) Reached(count int) bool {
	return l.Set && count >= l.N
}

// RunParams are fixed for the lifetime of a run.
type RunParams struct {
	IterationLimit Limit
	PurchaseLimit  Limit
	Relist         bool
	MinList        int
	MaxList        int
}

// Resolve splits the command into tunables (absent or non-positive fields
// take def) and run parameters. Relisting needs both list bounds; without
// them it is turned off and ok is false.
func (c StartCommand) Resolve(def Tunables) (t Tunables, p RunParams, ok bool) {
	t = Tunables{
		RPM:                  numberOr(c.RPM, 0),
		SearchResultDelay:    millis(c.SearchResultDelay),
		ConfirmDialogDelay:   millis(c.ConfirmDialogDelay),
		ConfirmPurchaseDelay: millis(c.ConfirmPurchaseDelay),
	}.WithDefaults(def)

	p.IterationLimit = limitOf(c.SearchLimit)
	p.PurchaseLimit = limitOf(c.PurchaseLimit)

	ok = true
	if c.Relist || c.Checked {
		minList, hasMin := c.MinList.Get()
		maxList, hasMax := c.MaxList.Get()
		if hasMin && hasMax {
			p.Relist = true
			p.MinList = int(minList)
			p.MaxList = int(maxList)
		} else {
			ok = false
		}
	}
	return t, p, ok
}

func numberOr(n Number, def float64) float64 {
	if v, ok := n.Get(); ok {
		return v
	}
	return def
}

func millis(n Number) time.Duration {
	return time.Duration(numberOr(n, 0) * float64(time.Millisecond))
}

func limitOf(n Number) Limit {
	v, ok := n.Get()
	if !ok {
		return Limit{}
	}
	if v < 0 {
		v = 0
	}
	return Limit{N: int(v), Set: true}
}
