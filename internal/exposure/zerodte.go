package exposure

import "github.com/dgnsrekt/gexray/internal/chain"

// Escalation thresholds for the 0-DTE warning, in hours to the close.
const (
	zeroDTEWatchHours    = 3.25 // second half of the session
	zeroDTECautionHours  = 2.0
	zeroDTECriticalHours = 1.0
)

// ZeroDTEStatus summarizes same-day expiries and the gamma regime they put
// the tape in.
type ZeroDTEStatus struct {
	Active             bool    `json:"active"`
	Contracts          int     `json:"contracts"`
	TotalOI            int64   `json:"total_oi"`
	HoursToClose       float64 `json:"hours_to_close"`
	ATMGammaMultiplier float64 `json:"atm_gamma_multiplier"`
	Warning            string  `json:"warning,omitempty"`
}

// computeZeroDTEStatus counts contracts expiring on the current market day
// and reports the ATM multiplier currently applied to their GEX. The
// warning escalates as the close approaches.
func (e *Engine) computeZeroDTEStatus(contracts []chain.OptionContract) ZeroDTEStatus {
	status := ZeroDTEStatus{}
	for _, c := range contracts {
		if e.clock.SameMarketDay(c.Expiration) {
			status.Contracts++
			status.TotalOI += c.OpenInterest
		}
	}
	if status.Contracts == 0 {
		return status
	}

	status.Active = true
	status.HoursToClose = e.clock.HoursToClose(0.5)
	status.ATMGammaMultiplier = ZeroDTEMultiplier(status.HoursToClose, 0)

	switch {
	case status.HoursToClose <= zeroDTECriticalHours:
		status.Warning = "0DTE gamma explosion window: under one hour to the close"
	case status.HoursToClose <= zeroDTECautionHours:
		status.Warning = "0DTE gamma accelerating: under two hours to the close"
	case status.HoursToClose <= zeroDTEWatchHours:
		status.Warning = "0DTE contracts active: second half of the session"
	}
	return status
}
