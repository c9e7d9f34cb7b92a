package footprint

import "math"

// Product categories covered by the calculator.
const (
	CategoryCooking = "Cooking"
	CategoryCooling = "Cooling"
	CategoryWashing = "Washing"
	CategoryDrying  = "Drying"
)

// Categories lists the supported product categories in display order.
var Categories = []string{CategoryCooking, CategoryCooling, CategoryWashing, CategoryDrying}

// GridFactor is a named electricity emission factor in kg CO2e per kWh.
type GridFactor struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

// GridFactors lists the selectable grid emission factors in display order.
var GridFactors = []GridFactor{
	{Name: "Mexico (~0.42)", Factor: 0.42},
	{Name: "EU-27 (~0.25)", Factor: 0.25},
	{Name: "USA (~0.40)", Factor: 0.40},
	{Name: "Renewables (~0.10)", Factor: 0.10},
}

// LifetimeDefaults holds the assumed product lifetime in years per category.
var LifetimeDefaults = map[string]int{
	CategoryCooking: 10,
	CategoryCooling: 12,
	CategoryWashing: 10,
	CategoryDrying:  12,
}

// KWhDefaults holds a typical annual energy consumption per category, used
// for presets when extraction found nothing.
var KWhDefaults = map[string]float64{
	CategoryCooking: 95.0,
	CategoryCooling: 190.0,
	CategoryWashing: 150.0,
	CategoryDrying:  400.0,
}

// DisplayNames maps input keys to the names shown in reports and the UI.
var DisplayNames = map[string]string{
	KeyTransport:  "Transport CO2",
	KeyMaterials:  "Materials CO2",
	KeyProduction: "Production CO2",
	KeyUseKWh:     "Annual kWh",
}

// DefaultLifetime is the fallback when the category is unknown.
const DefaultLifetime = 10

// DefaultGridFactor is the EU-27 average grid intensity, used when the caller
// does not pick a factor.
const DefaultGridFactor = 0.25

// energy label bands: annual kWh thresholds for labels A through F, G above.
var labelBands = map[string][]float64{
	CategoryCooking: {50, 70, 95, 120, 150, 180},
	CategoryCooling: {100, 150, 200, 250, 300, 350},
	CategoryWashing: {80, 110, 140, 170, 200, 240},
	CategoryDrying:  {200, 300, 400, 500, 600, 700},
}

var genericBands = []float64{110, 140, 180, 220, 270, 330}

// SuggestLabel returns the indicative EU energy label (A through G) for an
// annual consumption, using category-specific thresholds. A value sitting
// exactly on a threshold gets the better label. Unknown categories fall back
// to generic bands.
func SuggestLabel(kwh float64, category string) string {
	bands, ok := labelBands[category]
	if !ok {
		bands = genericBands
	}
	for i, limit := range bands {
		if kwh <= limit {
			return string("ABCDEFG"[i])
		}
	}
	return "G"
}

// Lifetime returns the default lifetime for a category.
func Lifetime(category string) int {
	if years, ok := LifetimeDefaults[category]; ok {
		return years
	}
	return DefaultLifetime
}

// Presets suggests three candidate values for an input key: swings of ±10%
// around the extracted value when one exists, otherwise static per-key
// fallbacks. For annual consumption the fallback scales the category's
// typical kWh by 0.85, 1.0 and 1.15.
func Presets(key string, extracted float64, category string) []float64 {
	if extracted > 0 {
		return []float64{
			roundTo(extracted*0.9, 1),
			roundTo(extracted, 1),
			roundTo(extracted*1.1, 1),
		}
	}
	switch key {
	case KeyTransport:
		return []float64{2.0, 5.0, 10.0}
	case KeyMaterials:
		return []float64{50.0, 100.0, 150.0}
	case KeyProduction:
		return []float64{15.0, 25.0, 40.0}
	case KeyUseKWh:
		base, ok := KWhDefaults[category]
		if !ok {
			base = 180.0
		}
		return []float64{
			math.Round(base * 0.85),
			math.Round(base),
			math.Round(base * 1.15),
		}
	}
	return []float64{0.0, 0.0, 0.0}
}

func roundTo(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}
