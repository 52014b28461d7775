// Package model contains domain models passed between layers.
package model

import "sort"

// Pillar names one risk dimension with its own raw indicator and
// normalization reference range.
type Pillar string

// Pillars assessed by the engine. Population is derived from the raw
// population figure rather than read from its own indicator column.
const (
	PillarTransport    Pillar = "transport"
	PillarUtilities    Pillar = "utilities"
	PillarWater        Pillar = "water"
	PillarHealthcare   Pillar = "healthcare"
	PillarEconomic     Pillar = "economic"
	PillarPreparedness Pillar = "preparedness"
	PillarPopulation   Pillar = "population"
)

// RawPillars returns the pillars backed directly by an indicator column,
// in stable name order.
func RawPillars() []Pillar {
	return []Pillar{
		PillarEconomic,
		PillarHealthcare,
		PillarPreparedness,
		PillarTransport,
		PillarUtilities,
		PillarWater,
	}
}

// AllPillars returns every pillar including derived ones, in stable name order.
func AllPillars() []Pillar {
	return []Pillar{
		PillarEconomic,
		PillarHealthcare,
		PillarPopulation,
		PillarPreparedness,
		PillarTransport,
		PillarUtilities,
		PillarWater,
	}
}

// RiskLevel is the discrete tier derived from a composite score.
type RiskLevel string

// Risk tiers ordered from best to worst.
const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// IndicatorRecord holds one city's raw indicators. Immutable once loaded.
type IndicatorRecord struct {
	ID                 string  // stable identifier, e.g. "tokyo-japan"
	City               string
	Country            string
	Region             string
	Latitude           float64
	Longitude          float64
	PopulationMillions float64
	RoadQuality        float64 // transport pillar, 0-100 higher is better
	GridStability      float64 // utilities pillar, 0-100 higher is better
	WaterSecurity      float64 // water pillar, 0-100 higher is better
	HealthcareCapacity float64 // healthcare pillar, 0-100 higher is better
	Preparedness       float64 // preparedness pillar, 0-100 higher is better
	GDPPerCapita       float64 // economic pillar, USD, higher is better
}

// GapVector maps each pillar to its normalized shortfall in [0,1],
// where 0 is no shortfall and 1 is maximal shortfall.
type GapVector map[Pillar]float64

// Pillars returns the vector's pillar set in name order.
func (g GapVector) Pillars() []Pillar {
	out := make([]Pillar, 0, len(g))
	for p := range g {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy of the vector.
func (g GapVector) Clone() GapVector {
	out := make(GapVector, len(g))
	for p, v := range g {
		out[p] = v
	}
	return out
}

// PillarContribution is one pillar's share of a composite score.
type PillarContribution struct {
	Pillar       Pillar  `json:"pillar"`
	Weight       float64 `json:"weight"`
	Gap          float64 `json:"gap"`
	Contribution float64 `json:"contribution"` // weight * gap
}

// CompositeScoreRecord is the scored output for one city under one scenario.
// It is ephemeral: always derivable from a GapVector and a weight
// configuration, never the source of truth.
type CompositeScoreRecord struct {
	Rank      int                  `json:"rank,omitempty"`
	ID        string               `json:"id"`
	City      string               `json:"city"`
	Country   string               `json:"country"`
	Composite float64              `json:"composite"`
	Level     RiskLevel            `json:"level"`
	Breakdown []PillarContribution `json:"breakdown"`
}
