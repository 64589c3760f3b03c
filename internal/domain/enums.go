package domain

import (
	"encoding/json"
	"strings"
)

// Severity of an alert. Wire values other than warning/critical decode to
// SeverityUnknown so newer backends do not break older clients.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
	SeverityUnknown  Severity = "unknown"
)

// ParseSeverity maps a wire value onto the closed severity set.
func ParseSeverity(raw string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(raw))) {
	case SeverityWarning:
		return SeverityWarning
	case SeverityCritical:
		return SeverityCritical
	default:
		return SeverityUnknown
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseSeverity(raw)
	return nil
}

// Unit is the unit a limit threshold is expressed in.
type Unit string

const (
	UnitCurrency Unit = "$"
	UnitPercent  Unit = "%"
	UnitCount    Unit = "assets"
)

// LimitType names the metric a risk limit constrains.
// Unknown values are kept verbatim; see Known.
type LimitType string

const (
	LimitMaxVaR             LimitType = "max_var"
	LimitMaxCVaR            LimitType = "max_cvar"
	LimitMaxVolatility      LimitType = "max_volatility"
	LimitMaxConcentration   LimitType = "max_concentration"
	LimitMinDiversification LimitType = "min_diversification"
	LimitMaxDrawdown        LimitType = "max_drawdown"
)

// LimitTypeInfo describes a known limit type for forms and listings.
type LimitTypeInfo struct {
	Type  LimitType
	Label string
	Unit  Unit
}

// LimitTypes is the catalogue offered when creating a limit, in display order.
var LimitTypes = []LimitTypeInfo{
	{LimitMaxVaR, "Maximum VaR", UnitCurrency},
	{LimitMaxCVaR, "Maximum CVaR", UnitCurrency},
	{LimitMaxVolatility, "Maximum Volatility", UnitPercent},
	{LimitMaxConcentration, "Maximum Asset Concentration", UnitPercent},
	{LimitMinDiversification, "Minimum Diversification", UnitCount},
	{LimitMaxDrawdown, "Maximum Drawdown", UnitPercent},
}

func (t LimitType) info() (LimitTypeInfo, bool) {
	for _, info := range LimitTypes {
		if info.Type == t {
			return info, true
		}
	}
	return LimitTypeInfo{}, false
}

// Known reports whether t is part of the catalogue.
func (t LimitType) Known() bool {
	_, ok := t.info()
	return ok
}

// Label is the human-readable name. Unknown types render as upper-cased words.
func (t LimitType) Label() string {
	if info, ok := t.info(); ok {
		return info.Label
	}
	return strings.ToUpper(strings.ReplaceAll(string(t), "_", " "))
}

// Unit returns the threshold unit. Unknown types are treated as percentages
// when their name says so and as currency amounts otherwise.
func (t LimitType) Unit() Unit {
	if info, ok := t.info(); ok {
		return info.Unit
	}
	name := string(t)
	if strings.Contains(name, "percentage") || strings.Contains(name, "concentration") {
		return UnitPercent
	}
	return UnitCurrency
}

// ScenarioType classifies a stress scenario.
// Unknown values are kept verbatim; see Known.
type ScenarioType string

const (
	ScenarioMarketCrash    ScenarioType = "market_crash"
	ScenarioRateChange     ScenarioType = "rate_change"
	ScenarioSectorRotation ScenarioType = "sector_rotation"
	ScenarioCurrencyCrisis ScenarioType = "currency_crisis"
	ScenarioCustom         ScenarioType = "custom"
)

var scenarioTypeLabels = map[ScenarioType]string{
	ScenarioMarketCrash:    "Market Crash",
	ScenarioRateChange:     "Interest Rate Change",
	ScenarioSectorRotation: "Sector Rotation",
	ScenarioCurrencyCrisis: "Currency Crisis",
	ScenarioCustom:         "Custom",
}

// ScenarioTypes lists the known scenario types in display order.
var ScenarioTypes = []ScenarioType{
	ScenarioMarketCrash,
	ScenarioRateChange,
	ScenarioSectorRotation,
	ScenarioCurrencyCrisis,
	ScenarioCustom,
}

// Known reports whether t is one of ScenarioTypes.
func (t ScenarioType) Known() bool {
	_, ok := scenarioTypeLabels[t]
	return ok
}

// Label is the human-readable name of the scenario type.
func (t ScenarioType) Label() string {
	if label, ok := scenarioTypeLabels[t]; ok {
		return label
	}
	return strings.ToUpper(strings.ReplaceAll(string(t), "_", " "))
}
