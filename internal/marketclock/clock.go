package marketclock

import (
	"time"

	"github.com/scmhub/calendar"
)

const (
	closeHour   = 16
	closeMinute = 0

	// SessionHours is the length of a regular cash session.
	SessionHours = 6.5

	// TradingDaysPerYear is the annualization basis for intraday fractions.
	TradingDaysPerYear = 252
)

// Clock supplies the "now" reference for day counts and 0-DTE detection.
// The time source is injectable so calculations are reproducible in tests.
type Clock struct {
	now      func() time.Time
	location *time.Location
	nyse     *calendar.Calendar
}

// New returns a Clock in the US equity market timezone using the real time
// source.
func New() *Clock {
	return NewAt(time.Now)
}

// NewAt returns a Clock with a custom time source.
func NewAt(now func() time.Time) *Clock {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return &Clock{
		now:      now,
		location: loc,
		nyse:     calendar.XNYS(),
	}
}

// Now returns the current time in the market timezone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.location)
}

// Location returns the market timezone.
func (c *Clock) Location() *time.Location {
	return c.location
}

// IsBusinessDay reports whether t falls on an NYSE trading day.
func (c *Clock) IsBusinessDay(t time.Time) bool {
	return c.nyse.IsBusinessDay(t.In(c.location))
}

// MarketClose returns the 16:00 close on t's calendar day.
func (c *Clock) MarketClose(t time.Time) time.Time {
	t = t.In(c.location)
	return time.Date(t.Year(), t.Month(), t.Day(), closeHour, closeMinute, 0, 0, c.location)
}

// HoursToClose returns hours remaining until today's close, floored at the
// given minimum. After the close it returns the floor.
func (c *Clock) HoursToClose(min float64) float64 {
	now := c.Now()
	remaining := c.MarketClose(now).Sub(now).Hours()
	if remaining < min {
		return min
	}
	return remaining
}

// SameMarketDay reports whether t falls on the current calendar day in the
// market timezone.
func (c *Clock) SameMarketDay(t time.Time) bool {
	now := c.Now()
	ty, tm, td := t.In(c.location).Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd
}

// DaysUntil returns whole calendar days from now until t, never negative.
func (c *Clock) DaysUntil(t time.Time) int {
	now := c.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.location)
	end := t.In(c.location)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, c.location)
	days := int(endDay.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
