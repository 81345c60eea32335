package sniper

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Price is an observed purchase price in coins.
type Price int

// UnknownPrice is reported when the confirmation text carries no numeral.
const UnknownPrice Price = -1

var priceRe = regexp.MustCompile(`\d{1,3}(?:,\d{3})+|\d+`)

// ParsePrice extracts the first numeral from s, accepting comma grouped
// thousands: "You won this item for 1,250 coins" is 1250.
func ParsePrice(s string) Price {
	m := priceRe.FindString(s)
	if m == "" {
		return UnknownPrice
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return UnknownPrice
	}
	return Price(n)
}

func (p Price) Known() bool { return p >= 0 }

func (p Price) String() string {
	if !p.Known() {
		return "unknown"
	}
	return strconv.Itoa(int(p))
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Known() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(p))), nil
}

func (p *Price) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = UnknownPrice
		return nil
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return err
	}
	*p = Price(n)
	return nil
}

func pricePtr(p Price) *Price { return &p }

// RatePause converts cycles per minute into the pause that follows a cycle.
// Non-positive or non-finite rates fall back to DefaultRPM.
func RatePause(rpm float64) time.Duration {
	if !(rpm > 0) || math.IsInf(rpm, 0) {
		rpm = DefaultRPM
	}
	return time.Duration(60 / rpm * 1000 * float64(time.Millisecond))
}
