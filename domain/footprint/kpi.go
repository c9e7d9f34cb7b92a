package footprint

import "math"

// Derived KPI keys, in addition to the four input keys which reappear in
// the KPI map rounded to two decimals.
const (
	KeyUsePhase        = "UsePhase_CO2e"
	KeyTotal           = "Total_CO2e"
	KeyShareTransport  = "Share_Transport_%"
	KeyShareMaterials  = "Share_Materials_%"
	KeyShareProduction = "Share_Production_%"
	KeyShareUse        = "Share_Use_%"
)

// KPIKeys lists every key ComputeKPIs emits, in report order.
var KPIKeys = []string{
	KeyTransport,
	KeyMaterials,
	KeyProduction,
	KeyUseKWh,
	KeyUsePhase,
	KeyTotal,
	KeyShareTransport,
	KeyShareMaterials,
	KeyShareProduction,
	KeyShareUse,
}

// ComputeKPIs derives the lifecycle CO2e figures from the four inputs.
// Use-phase emissions are annual consumption times grid factor times
// lifetime; the total sums all four phases. Shares are percentages of the
// total, or all zero when the total is zero. Missing input keys count as
// zero. Values are rounded to two decimals, shares to one.
func ComputeKPIs(inputs map[string]float64, gridFactor float64, lifetime int) map[string]float64 {
	t := inputs[KeyTransport]
	m := inputs[KeyMaterials]
	p := inputs[KeyProduction]
	kwh := inputs[KeyUseKWh]

	use := kwh * gridFactor * float64(lifetime)
	total := t + m + p + use

	var shareT, shareM, shareP, shareUse float64
	if total > 0 {
		shareT = t / total * 100.0
		shareM = m / total * 100.0
		shareP = p / total * 100.0
		shareUse = use / total * 100.0
	}

	return map[string]float64{
		KeyTransport:       round2(t),
		KeyMaterials:       round2(m),
		KeyProduction:      round2(p),
		KeyUseKWh:          round2(kwh),
		KeyUsePhase:        round2(use),
		KeyTotal:           round2(total),
		KeyShareTransport:  round1(shareT),
		KeyShareMaterials:  round1(shareM),
		KeyShareProduction: round1(shareP),
		KeyShareUse:        round1(shareUse),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
