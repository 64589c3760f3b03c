package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/aristath/riskdesk/internal/config"
	"github.com/aristath/riskdesk/internal/domain"
	"github.com/aristath/riskdesk/internal/format"
	"github.com/aristath/riskdesk/internal/views"
	"github.com/google/subcommands"
)

func loadRisk(ctx context.Context, env *Env, ref string) (*views.RiskView, subcommands.ExitStatus) {
	v := views.NewRiskView(ctx, env.Backend, env.Log, env.Risk)
	views.Drive(v, v.Load())
	if status := check(env, &v.Lifecycle); status != subcommands.ExitSuccess {
		return nil, status
	}
	if err := selectPortfolio(v, &v.Selection, ref); err != nil {
		return nil, failf(env, "%v", err)
	}
	return v, check(env, &v.Lifecycle)
}

func printCalculation(env *Env, r *domain.RiskCalculation, currency string) {
	rows := [][]string{
		{"VaR", format.Money(r.VaRValue, currency), format.Percent(r.VaRPercentage)},
		{"CVaR", format.Money(r.CVaRValue, currency), format.Percent(r.CVaRPercentage)},
		{"Volatility", "", format.Percent(r.Volatility)},
		{"Sharpe ratio", fmt.Sprintf("%.2f", r.SharpeRatio), ""},
		{"Max drawdown", "", format.Percent(r.MaxDrawdown)},
	}
	heading(env.Out, fmt.Sprintf("%s @ %s, %s", format.Horizon(r.HorizonDays), format.Confidence(r.ConfidenceLevel), format.Date(r.CalculationDate)))
	renderTable(env.Out, []string{"Metric", "Amount", "Percent"}, rows)
}

type riskCmd struct {
	portfolio string
}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "show the latest risk calculation and its history" }
func (*riskCmd) Usage() string {
	return `riskdeskctl risk [-p <portfolio id or name>]
`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id or name.")
}

func (c *riskCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	v, status := loadRisk(ctx, env, c.portfolio)
	if status != subcommands.ExitSuccess {
		return status
	}

	currency := v.Selected.Currency
	heading(env.Out, v.Selected.Name)
	if v.Latest == nil {
		fmt.Fprintln(env.Out, "No risk calculation yet.")
		return subcommands.ExitSuccess
	}
	printCalculation(env, v.Latest, currency)

	rows := make([][]string, 0, len(v.History))
	for _, r := range v.History {
		rows = append(rows, []string{
			format.Date(r.CalculationDate),
			format.Horizon(r.HorizonDays),
			format.Confidence(r.ConfidenceLevel),
			format.Money(r.VaRValue, currency),
			format.Percent(r.VaRPercentage),
		})
	}
	renderTable(env.Out, []string{"Date", "Horizon", "Confidence", "VaR", "VaR %"}, rows)
	return subcommands.ExitSuccess
}

type calculateCmd struct {
	portfolio  string
	horizon    int
	confidence float64
}

func (*calculateCmd) Name() string     { return "calculate" }
func (*calculateCmd) Synopsis() string { return "run a risk calculation" }
func (*calculateCmd) Usage() string {
	return fmt.Sprintf(`riskdeskctl calculate [-p <portfolio>] [-horizon <days>] [-confidence <level>]

  Horizons: %v. Confidence levels: %v.
`, config.HorizonOptions, config.ConfidenceOptions)
}

func (c *calculateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id or name.")
	f.IntVar(&c.horizon, "horizon", 0, "Horizon in days. Defaults to the configured horizon.")
	f.Float64Var(&c.confidence, "confidence", 0, "Confidence level. Defaults to the configured level.")
}

func (c *calculateCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	v, status := loadRisk(ctx, env, c.portfolio)
	if status != subcommands.ExitSuccess {
		return status
	}
	if c.horizon != 0 && !v.SetHorizon(c.horizon) {
		return usagef(env, "horizon must be one of %v", config.HorizonOptions)
	}
	if c.confidence != 0 && !v.SetConfidence(c.confidence) {
		return usagef(env, "confidence must be one of %v", config.ConfidenceOptions)
	}

	views.Drive(v, v.Calculate())
	if status := check(env, &v.Lifecycle); status != subcommands.ExitSuccess {
		return status
	}
	heading(env.Out, v.Selected.Name)
	printCalculation(env, v.Latest, v.Selected.Currency)
	return subcommands.ExitSuccess
}
