package chain

import (
	"fmt"
	"time"
)

// OptionType distinguishes calls from puts.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// OptionContract is one row of an options chain. Contracts are treated as
// immutable once constructed; a refresh cycle always supplies a fresh batch.
type OptionContract struct {
	Strike       float64    `json:"strike"`
	Expiration   time.Time  `json:"expiration"`
	Type         OptionType `json:"type"`
	OpenInterest int64      `json:"open_interest"`
	Volume       int64      `json:"volume"`
	Gamma        float64    `json:"gamma"`
	Delta        float64    `json:"delta"`
	Vega         float64    `json:"vega"`
	Vanna        float64    `json:"vanna"`
	IV           float64    `json:"iv"` // decimal fraction, 0 = unknown
	Bid          float64    `json:"bid"`
	Ask          float64    `json:"ask"`
}

// IsCall reports whether the contract is a call.
func (c OptionContract) IsCall() bool {
	return c.Type == Call
}

// Mid returns the bid/ask midpoint, or zero when the quote is empty.
func (c OptionContract) Mid() float64 {
	if c.Bid <= 0 && c.Ask <= 0 {
		return 0
	}
	return (c.Bid + c.Ask) / 2
}

// DTE returns whole calendar days from now until expiration, never negative.
func (c OptionContract) DTE(now time.Time) int {
	days := int(c.Expiration.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ExpiresOn reports whether the contract expires on the given calendar day
// in the given location.
func (c OptionContract) ExpiresOn(day time.Time, loc *time.Location) bool {
	ey, em, ed := c.Expiration.In(loc).Date()
	dy, dm, dd := day.In(loc).Date()
	return ey == dy && em == dm && ed == dd
}

// Validate checks the fields an upstream adapter must always populate.
func (c OptionContract) Validate() error {
	if c.Strike <= 0 {
		return fmt.Errorf("strike must be positive, got %v", c.Strike)
	}
	if c.Type != Call && c.Type != Put {
		return fmt.Errorf("unknown option type %q", c.Type)
	}
	if c.OpenInterest < 0 {
		return fmt.Errorf("open interest must be non-negative, got %d", c.OpenInterest)
	}
	if c.Volume < 0 {
		return fmt.Errorf("volume must be non-negative, got %d", c.Volume)
	}
	return nil
}
