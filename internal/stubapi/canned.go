package stubapi

import "github.com/aristath/riskdesk/internal/domain"

// Notional portfolio value the canned figures are quoted against.
const cannedNotional = 100000.0

// VaR percentage per horizon at 95% confidence.
var cannedVaRByHorizon = map[int]float64{
	1:  1.65,
	10: 5.2,
	30: 9.05,
	90: 15.7,
}

var cannedConfidenceFactor = map[float64]float64{
	0.90: 0.78,
	0.95: 1.0,
	0.99: 1.41,
}

type metrics struct {
	varValue   float64
	varPct     float64
	cvarValue  float64
	cvarPct    float64
	volatility float64
	sharpe     float64
	drawdown   float64
}

// cannedMetrics looks up fixed figures for the request. Unlisted horizons and
// confidence levels fall back to the one-day 95% row.
func cannedMetrics(horizonDays int, confidence float64) metrics {
	pct, ok := cannedVaRByHorizon[horizonDays]
	if !ok {
		pct = cannedVaRByHorizon[1]
	}
	factor, ok := cannedConfidenceFactor[confidence]
	if !ok {
		factor = 1
	}
	varPct := pct * factor
	cvarPct := varPct * 1.25
	return metrics{
		varValue:   cannedNotional * varPct / 100,
		varPct:     varPct,
		cvarValue:  cannedNotional * cvarPct / 100,
		cvarPct:    cvarPct,
		volatility: 14.8,
		sharpe:     1.12,
		drawdown:   -18.3,
	}
}

type impact struct {
	valueChange      float64
	varChange        float64
	volatilityChange float64
}

var cannedImpacts = map[domain.ScenarioType]impact{
	domain.ScenarioMarketCrash:    {valueChange: -18.4, varChange: 42.0, volatilityChange: 61.5},
	domain.ScenarioRateChange:     {valueChange: -4.2, varChange: 8.5, volatilityChange: 6.1},
	domain.ScenarioSectorRotation: {valueChange: -2.7, varChange: 3.9, volatilityChange: 4.4},
	domain.ScenarioCurrencyCrisis: {valueChange: -7.9, varChange: 15.2, volatilityChange: 19.8},
}

func cannedImpact(t domain.ScenarioType) impact {
	if v, ok := cannedImpacts[t]; ok {
		return v
	}
	return impact{valueChange: -1.0, varChange: 2.0, volatilityChange: 1.5}
}
