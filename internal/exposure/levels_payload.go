package exposure

// maxLevelZones caps the compact payload at ten zones.
const maxLevelZones = 10

// LevelZone is one zone row of the compact payload. The field set is parsed
// directly by an external charting client; do not rename or drop fields.
type LevelZone struct {
	Strike   float64  `json:"strike"`
	GEXBn    float64  `json:"gex_bn"`
	Role     Role     `json:"role"`
	Polarity Polarity `json:"polarity"`
	Strength float64  `json:"strength"`
	Context  Context  `json:"context"`
}

// LevelsPayload is the low-bandwidth shape of a snapshot.
type LevelsPayload struct {
	Spot      float64     `json:"spot"`
	ZeroGamma *float64    `json:"zero_gamma"`
	NetGEXBn  float64     `json:"net_gex_bn"`
	Zones     []LevelZone `json:"zones"`
}

// Levels reduces a snapshot to the compact charting payload: spot, the
// zero-gamma level, net GEX in billions and at most ten zones.
func (s *Snapshot) Levels() *LevelsPayload {
	payload := &LevelsPayload{
		Spot:      s.Spot,
		ZeroGamma: s.ZeroGamma,
		NetGEXBn:  toBillions(s.Totals.NetGEX),
		Zones:     []LevelZone{},
	}
	for _, z := range s.Zones {
		if len(payload.Zones) == maxLevelZones {
			break
		}
		payload.Zones = append(payload.Zones, LevelZone{
			Strike:   z.Strike,
			GEXBn:    toBillions(z.NetGEX),
			Role:     z.Role,
			Polarity: z.Polarity,
			Strength: z.Strength,
			Context:  z.Context,
		})
	}
	return payload
}
