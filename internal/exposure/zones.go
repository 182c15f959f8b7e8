package exposure

import (
	"math"
	"sort"
)

// Polarity is the sign of a strike's net GEX.
type Polarity string

const (
	Positive Polarity = "positive"
	Negative Polarity = "negative"
)

// Role classifies what a zone is expected to do to price.
type Role string

const (
	RoleKing        Role = "king"
	RoleGatekeeper  Role = "gatekeeper"
	RoleSupport     Role = "support"
	RoleResistance  Role = "resistance"
	RoleAccelerator Role = "accelerator"
)

// Context is the qualitative trading-context label attached to a zone.
type Context string

const (
	ContextMagnet       Context = "magnet"
	ContextAbsorption   Context = "absorption"
	ContextAcceleration Context = "acceleration"
	ContextSupport      Context = "support"
	ContextResistance   Context = "resistance"
	ContextNeutral      Context = "neutral"
)

// Fixed classification thresholds. These are documented constants, not
// per-call tunables, so identical chains classify identically everywhere.
const (
	magnetMinStrength        = 0.90
	accelerationProximityPct = 0.02
	absorptionProximityPct   = 0.01
	absorptionMinStrength    = 0.50
)

// Zone is one classified strike, rebuilt from scratch every calculation.
type Zone struct {
	Strike      float64            `json:"strike"`
	NetGEX      float64            `json:"net_gex"`
	NetGEXText  string             `json:"net_gex_text"`
	Polarity    Polarity           `json:"polarity"`
	Role        Role               `json:"role"`
	Strength    float64            `json:"strength"`
	Context     Context            `json:"trading_context"`
	GEXByExpiry map[string]float64 `json:"gex_by_expiry"`
}

// Classifier turns strike aggregates into ranked, labeled zones.
type Classifier struct {
	minGEX   float64
	maxZones int
}

// NewClassifier returns a Classifier with the given magnitude filter and
// zone cap.
func NewClassifier(minGEX float64, maxZones int) *Classifier {
	return &Classifier{minGEX: minGEX, maxZones: maxZones}
}

// Classify filters, ranks and labels the aggregates. The returned zones are
// sorted by strike descending for presentation; king and gatekeeper point
// into that slice. Gatekeeper is nil when every retained strike shares the
// king's polarity.
func (cl *Classifier) Classify(aggs map[float64]*StrikeAggregate, spot float64) (zones []Zone, king, gatekeeper *Zone) {
	ranked := make([]*StrikeAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if math.Abs(agg.NetGEX) >= cl.minGEX {
			ranked = append(ranked, agg)
		}
	}
	if len(ranked) == 0 {
		return nil, nil, nil
	}

	// Ties break on strike so identical chains always rank identically.
	sort.Slice(ranked, func(i, j int) bool {
		ai, aj := math.Abs(ranked[i].NetGEX), math.Abs(ranked[j].NetGEX)
		if ai != aj {
			return ai > aj
		}
		return ranked[i].Strike < ranked[j].Strike
	})

	kingAgg := ranked[0]
	kingPolarity := polarityOf(kingAgg.NetGEX)

	// First opposite-polarity strike in rank order deflects price before it
	// reaches the king.
	gatekeeperIdx := -1
	for i := 1; i < len(ranked); i++ {
		if polarityOf(ranked[i].NetGEX) != kingPolarity {
			gatekeeperIdx = i
			break
		}
	}

	if len(ranked) > cl.maxZones {
		// Keep the gatekeeper in play even when the cap would drop it, so
		// the snapshot's gatekeeper reference always matches a zone.
		if gatekeeperIdx >= cl.maxZones {
			ranked[cl.maxZones-1] = ranked[gatekeeperIdx]
			gatekeeperIdx = cl.maxZones - 1
		}
		ranked = ranked[:cl.maxZones]
	}

	maxAbs := math.Abs(kingAgg.NetGEX)
	zones = make([]Zone, 0, len(ranked))
	for i, agg := range ranked {
		polarity := polarityOf(agg.NetGEX)
		strength := round2(math.Abs(agg.NetGEX) / maxAbs)

		var role Role
		switch {
		case i == 0:
			role = RoleKing
		case i == gatekeeperIdx:
			role = RoleGatekeeper
		case polarity == Negative:
			role = RoleAccelerator
		case agg.Strike > spot:
			role = RoleResistance
		default:
			role = RoleSupport
		}

		zones = append(zones, Zone{
			Strike:      agg.Strike,
			NetGEX:      agg.NetGEX,
			NetGEXText:  FormatDollars(agg.NetGEX),
			Polarity:    polarity,
			Role:        role,
			Strength:    strength,
			Context:     classifyContext(role == RoleKing, polarity, strength, agg.Strike, spot),
			GEXByExpiry: roundExpiryMap(agg.GEXByExpiry),
		})
	}

	// Presentation order is strike descending; role assignment above used
	// rank order.
	sort.Slice(zones, func(i, j int) bool { return zones[i].Strike > zones[j].Strike })

	for i := range zones {
		switch zones[i].Role {
		case RoleKing:
			king = &zones[i]
		case RoleGatekeeper:
			gatekeeper = &zones[i]
		}
	}
	return zones, king, gatekeeper
}

// zoneFacts is what the context rule chain is allowed to look at.
type zoneFacts struct {
	isKing    bool
	polarity  Polarity
	strength  float64
	proximity float64 // |strike-spot|/spot
	above     bool    // strike strictly above spot
}

type contextRule struct {
	label Context
	match func(zoneFacts) bool
}

// contextRules is evaluated top to bottom; the first match wins. Keeping
// the chain as data makes the precedence auditable and each rule testable
// on its own.
var contextRules = []contextRule{
	{ContextMagnet, func(f zoneFacts) bool {
		return f.isKing && f.strength >= magnetMinStrength
	}},
	{ContextAcceleration, func(f zoneFacts) bool {
		return f.polarity == Negative && f.proximity <= accelerationProximityPct
	}},
	{ContextAbsorption, func(f zoneFacts) bool {
		return f.polarity == Positive && f.proximity <= absorptionProximityPct && f.strength >= absorptionMinStrength
	}},
	{ContextResistance, func(f zoneFacts) bool {
		return f.polarity == Positive && f.above
	}},
	{ContextSupport, func(f zoneFacts) bool {
		return f.polarity == Positive
	}},
	{ContextAcceleration, func(f zoneFacts) bool {
		return f.polarity == Negative
	}},
}

func classifyContext(isKing bool, polarity Polarity, strength, strike, spot float64) Context {
	facts := zoneFacts{
		isKing:    isKing,
		polarity:  polarity,
		strength:  strength,
		proximity: math.Abs(strike-spot) / spot,
		above:     strike > spot,
	}
	for _, rule := range contextRules {
		if rule.match(facts) {
			return rule.label
		}
	}
	return ContextNeutral
}

func polarityOf(netGEX float64) Polarity {
	if netGEX < 0 {
		return Negative
	}
	return Positive
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundExpiryMap(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = math.Round(v)
	}
	return out
}
