// Package footprint defines the product carbon footprint model: the four
// required inputs, how an extracted value is attributed to its source cell,
// and the lifecycle KPI computation built on top of them.
package footprint

// The four inputs every computation needs. Extraction is organized around
// this list and its order.
const (
	KeyTransport  = "Transport_kgCO2e"
	KeyMaterials  = "Materials_kgCO2e"
	KeyProduction = "Production_kgCO2e"
	KeyUseKWh     = "Use_kWh_per_year"
)

// RequiredKeys lists the semantic input keys in canonical order.
var RequiredKeys = []string{
	KeyTransport,
	KeyMaterials,
	KeyProduction,
	KeyUseKWh,
}

// AnchorSynonyms maps each key to the label texts that identify it in a
// sheet, in priority order. Matching is case-insensitive substring matching
// against normalized cell text. The CO2 keys deliberately require explicit
// CO2/emission context so that generic words like "transport" alone cannot
// claim a value.
var AnchorSynonyms = map[string][]string{
	KeyUseKWh: {
		"annual energy consumption",
		"energy consumption",
		"consumo de energía",
		"consumo anual",
		"kwh/year",
		"kwh per year",
		"kwh/a",
		"kwh/año",
		"electricity consumption",
		"power consumption",
		"annual consumption",
		"yearly consumption",
		"use phase energy",
		"energy use",
	},
	KeyTransport: {
		"transport co2",
		"transport kgco2",
		"transport emissions",
		"logistics co2",
		"logistics emissions",
		"shipping co2",
		"co2 transport",
		"co2e transport",
		"transporte co2",
		"a1-a2", // LCA phase code
	},
	KeyMaterials: {
		"materials co2",
		"materials kgco2",
		"material emissions",
		"materials emissions",
		"raw materials co2",
		"bom co2",
		"co2 materials",
		"co2e materials",
		"materiales co2",
		"a1-a3", // LCA phase code
		"upstream emissions",
	},
	KeyProduction: {
		"production co2",
		"production kgco2",
		"production emissions",
		"manufacturing co2",
		"manufacturing emissions",
		"assembly co2",
		"factory co2",
		"co2 production",
		"co2e production",
		"producción co2",
		"a3", // LCA phase code
	},
}

// HeaderSynonyms maps each key to the substrings that classify a column
// header cell in tabular sheets.
var HeaderSynonyms = map[string][]string{
	KeyTransport:  {"transport", "logistics", "shipping", "co2e_transport", "co2_transport"},
	KeyMaterials:  {"material", "materials", "bill of materials", "bom", "co2e_material", "co2_material"},
	KeyProduction: {"production", "manufacturing", "factory", "co2e_production", "co2_production"},
	KeyUseKWh:     {"kwh/a", "kwh per year", "annual consumption", "use_kwh", "energy_use", "kwh/year"},
}
