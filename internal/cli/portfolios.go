package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/format"
	"github.com/aristath/riskdesk/internal/views"
	"github.com/google/subcommands"
)

type portfoliosCmd struct{}

func (*portfoliosCmd) Name() string     { return "portfolios" }
func (*portfoliosCmd) Synopsis() string { return "list portfolios" }
func (*portfoliosCmd) Usage() string {
	return `riskdeskctl portfolios

  Lists every portfolio known to the backend.
`
}
func (*portfoliosCmd) SetFlags(*flag.FlagSet) {}

func (*portfoliosCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	v := views.NewPortfolioView(ctx, env.Backend, env.Log)
	views.Drive(v, v.Load())
	if status := check(env, &v.Lifecycle); status != subcommands.ExitSuccess {
		return status
	}

	if len(v.Portfolios) == 0 {
		fmt.Fprintln(env.Out, "No portfolios.")
		return subcommands.ExitSuccess
	}
	rows := make([][]string, 0, len(v.Portfolios))
	for _, p := range v.Portfolios {
		rows = append(rows, []string{p.ID, p.Name, p.Currency, p.Description, format.Date(p.CreatedAt)})
	}
	renderTable(env.Out, []string{"ID", "Name", "Currency", "Description", "Created"}, rows)
	return subcommands.ExitSuccess
}

type createPortfolioCmd struct {
	name        string
	description string
	currency    string
}

func (*createPortfolioCmd) Name() string     { return "create-portfolio" }
func (*createPortfolioCmd) Synopsis() string { return "create a portfolio" }
func (*createPortfolioCmd) Usage() string {
	return `riskdeskctl create-portfolio -name <name> [-description <text>] [-currency <code>]
`
}

func (c *createPortfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Portfolio name (required).")
	f.StringVar(&c.description, "description", "", "Free-form description.")
	f.StringVar(&c.currency, "currency", "USD", "Base currency code.")
}

func (c *createPortfolioCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	if strings.TrimSpace(c.name) == "" {
		return usagef(env, "-name is required")
	}

	v := views.NewPortfolioView(ctx, env.Backend, env.Log)
	views.Drive(v, v.CreatePortfolio(api.CreatePortfolioInput{
		Name:        c.name,
		Description: c.description,
		Currency:    strings.ToUpper(c.currency),
	}))
	if status := check(env, &v.Lifecycle); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(env.Out, "Created portfolio %s (%s)\n", v.Created.Name, v.Created.ID)
	return subcommands.ExitSuccess
}

type positionsCmd struct {
	portfolio string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "list the positions of a portfolio" }
func (*positionsCmd) Usage() string {
	return `riskdeskctl positions [-p <portfolio id or name>]

  Defaults to the first portfolio.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id or name.")
}

func (c *positionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	v := views.NewPortfolioView(ctx, env.Backend, env.Log)
	views.Drive(v, v.Load())
	if status := check(env, &v.Lifecycle); status != subcommands.ExitSuccess {
		return status
	}
	if err := selectPortfolio(v, &v.Selection, c.portfolio); err != nil {
		return failf(env, "%v", err)
	}
	if status := check(env, &v.Lifecycle); status != subcommands.ExitSuccess {
		return status
	}

	p := v.Selected
	heading(env.Out, fmt.Sprintf("%s (%s)", p.Name, p.Currency))
	if len(v.Positions) == 0 {
		fmt.Fprintln(env.Out, "No positions.")
		return subcommands.ExitSuccess
	}
	rows := make([][]string, 0, len(v.Positions))
	for _, pos := range v.Positions {
		rows = append(rows, []string{
			pos.Ticker(),
			format.Number(pos.Quantity),
			format.Weight(pos.Weight),
			format.Money(pos.AvgPurchasePrice, p.Currency),
		})
	}
	renderTable(env.Out, []string{"Ticker", "Quantity", "Weight", "Avg price"}, rows)
	return subcommands.ExitSuccess
}
