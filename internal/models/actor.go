package models

// Metrics holds the raw career counts for an actor.
type Metrics struct {
	Wins     int `json:"wins" validate:"gte=0"`
	Starts   int `json:"starts" validate:"gte=0"`
	Placings int `json:"placings" validate:"gte=0"`
}

// DerivedRates are percentages in [0, 100].
type DerivedRates struct {
	WinRate   float64 `json:"win_rate"`
	PlaceRate float64 `json:"place_rate"`
}

// Rates computes win and place percentages. Zero starts yields zero rates.
func (m Metrics) Rates() DerivedRates {
	if m.Starts <= 0 {
		return DerivedRates{}
	}
	return DerivedRates{
		WinRate:   float64(m.Wins) / float64(m.Starts) * 100,
		PlaceRate: float64(m.Placings) / float64(m.Starts) * 100,
	}
}

// PerfectRecord reports an unbeaten record with no placings.
func (m Metrics) PerfectRecord() bool {
	return m.Starts > 0 && m.Wins == m.Starts && m.Placings == 0
}

// SourceRecord is one row as delivered by a data provider, before ranking.
// PreRanked is set when the source already carries Rank and rates.
type SourceRecord struct {
	Name      string
	Metrics   Metrics
	PreRanked bool
	Rank      int
	Rates     DerivedRates
}

// ActorRecord is a ranked actor. Key is the normalized name used for lookups.
type ActorRecord struct {
	Key       string       `json:"key"`
	Name      string       `json:"name"`
	Category  Category     `json:"category"`
	Metrics   Metrics      `json:"metrics"`
	Rates     DerivedRates `json:"derived_rates"`
	Composite float64      `json:"composite,omitempty"`
	Rank      int          `json:"rank"`
}
