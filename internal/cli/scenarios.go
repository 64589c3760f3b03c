package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/domain"
	"github.com/aristath/riskdesk/internal/format"
	"github.com/aristath/riskdesk/internal/views"
	"github.com/google/subcommands"
)

func loadScenarios(ctx context.Context, env *Env, ref string) (*views.ScenarioView, subcommands.ExitStatus) {
	v := views.NewScenarioView(ctx, env.Backend, env.Log)
	views.Drive(v, v.Load())
	if status := check(env, &v.Lifecycle); status != subcommands.ExitSuccess {
		return nil, status
	}
	if err := selectPortfolio(v, &v.Selection, ref); err != nil {
		return nil, failf(env, "%v", err)
	}
	return v, check(env, &v.Lifecycle)
}

func findScenario(v *views.ScenarioView, ref string) (domain.Scenario, bool) {
	for _, sc := range v.Scenarios {
		if sc.ID == ref || strings.EqualFold(sc.Name, ref) {
			return sc, true
		}
	}
	return domain.Scenario{}, false
}

func printResults(env *Env, v *views.ScenarioView) {
	if len(v.Results) == 0 {
		fmt.Fprintln(env.Out, "No results.")
		return
	}
	rows := make([][]string, 0, len(v.Results))
	for _, r := range v.Results {
		rows = append(rows, []string{
			v.ScenarioName(r.ScenarioID),
			format.SignedPercent(r.PortfolioValueChange),
			format.SignedPercent(r.VaRChange),
			format.SignedPercent(r.VolatilityChange),
			format.Date(r.CalculatedAt),
		})
	}
	renderTable(env.Out, []string{"Scenario", "Value", "VaR", "Volatility", "Calculated"}, rows)
}

type scenariosCmd struct {
	portfolio string
	templates bool
}

func (*scenariosCmd) Name() string     { return "scenarios" }
func (*scenariosCmd) Synopsis() string { return "list scenarios and the results of a portfolio" }
func (*scenariosCmd) Usage() string {
	return `riskdeskctl scenarios [-p <portfolio>] [-templates]
`
}

func (c *scenariosCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id or name.")
	f.BoolVar(&c.templates, "templates", false, "List the predefined scenario templates instead.")
}

func (c *scenariosCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	if c.templates {
		rows := make([][]string, 0, len(views.ScenarioTemplates))
		for i, tpl := range views.ScenarioTemplates {
			rows = append(rows, []string{strconv.Itoa(i + 1), tpl.Name, tpl.Type.Label(), tpl.Description, format.Parameters(tpl.Parameters)})
		}
		renderTable(env.Out, []string{"#", "Name", "Type", "Description", "Parameters"}, rows)
		return subcommands.ExitSuccess
	}

	v, status := loadScenarios(ctx, env, c.portfolio)
	if status != subcommands.ExitSuccess {
		return status
	}

	if len(v.Scenarios) == 0 {
		fmt.Fprintln(env.Out, "No scenarios.")
	} else {
		rows := make([][]string, 0, len(v.Scenarios))
		for _, sc := range v.Scenarios {
			rows = append(rows, []string{sc.ID, sc.Name, sc.ScenarioType.Label(), format.Parameters(sc.Parameters)})
		}
		renderTable(env.Out, []string{"ID", "Name", "Type", "Parameters"}, rows)
	}

	heading(env.Out, "Results for "+v.Selected.Name)
	printResults(env, v)
	return subcommands.ExitSuccess
}

type createScenarioCmd struct {
	template     int
	name         string
	description  string
	scenarioType string
	params       string
}

func (*createScenarioCmd) Name() string     { return "create-scenario" }
func (*createScenarioCmd) Synopsis() string { return "create a scenario from a template or from flags" }
func (*createScenarioCmd) Usage() string {
	return `riskdeskctl create-scenario -template <n>
riskdeskctl create-scenario -name <name> [-type <type>] [-params key=value,...]

  Templates are numbered as listed by "scenarios -templates".
`
}

func (c *createScenarioCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.template, "template", 0, "Predefined template number.")
	f.StringVar(&c.name, "name", "", "Scenario name.")
	f.StringVar(&c.description, "description", "", "Free-form description.")
	f.StringVar(&c.scenarioType, "type", string(domain.ScenarioCustom), "Scenario type.")
	f.StringVar(&c.params, "params", "", "Comma-separated numeric parameters, e.g. market_change=-10.")
}

func (c *createScenarioCmd) input() (api.CreateScenarioInput, error) {
	if c.template != 0 {
		if c.template < 1 || c.template > len(views.ScenarioTemplates) {
			return api.CreateScenarioInput{}, fmt.Errorf("template must be between 1 and %d", len(views.ScenarioTemplates))
		}
		return views.ScenarioTemplates[c.template-1].Input(), nil
	}
	if strings.TrimSpace(c.name) == "" {
		return api.CreateScenarioInput{}, fmt.Errorf("-name or -template is required")
	}
	scenarioType := domain.ScenarioType(strings.ToLower(c.scenarioType))
	if !scenarioType.Known() {
		return api.CreateScenarioInput{}, fmt.Errorf("unknown scenario type %q", c.scenarioType)
	}
	params, err := parseParams(c.params)
	if err != nil {
		return api.CreateScenarioInput{}, err
	}
	return api.CreateScenarioInput{
		Name:         c.name,
		Description:  c.description,
		ScenarioType: scenarioType,
		Parameters:   params,
	}, nil
}

func parseParams(raw string) (domain.Parameters, error) {
	params := domain.Parameters{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, val, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("parameter %q is not key=value", pair)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", k, err)
		}
		params[strings.TrimSpace(k)] = f
	}
	return params, nil
}

func (c *createScenarioCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	input, err := c.input()
	if err != nil {
		return usagef(env, "%v", err)
	}

	v := views.NewScenarioView(ctx, env.Backend, env.Log)
	views.Drive(v, v.Create(input))
	if status := check(env, &v.Lifecycle); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(env.Out, "Created scenario %s\n", input.Name)
	return subcommands.ExitSuccess
}

type runScenarioCmd struct {
	portfolio string
	scenario  string
}

func (*runScenarioCmd) Name() string     { return "run-scenario" }
func (*runScenarioCmd) Synopsis() string { return "run a scenario against a portfolio" }
func (*runScenarioCmd) Usage() string {
	return `riskdeskctl run-scenario -s <scenario id or name> [-p <portfolio>]
`
}

func (c *runScenarioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id or name.")
	f.StringVar(&c.scenario, "s", "", "Scenario id or name (required).")
}

func (c *runScenarioCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	if c.scenario == "" {
		return usagef(env, "-s is required")
	}
	v, status := loadScenarios(ctx, env, c.portfolio)
	if status != subcommands.ExitSuccess {
		return status
	}
	sc, ok := findScenario(v, c.scenario)
	if !ok {
		return failf(env, "scenario %q not found", c.scenario)
	}

	views.Drive(v, v.Run(sc.ID))
	if status := check(env, &v.Lifecycle); status != subcommands.ExitSuccess {
		return status
	}
	heading(env.Out, fmt.Sprintf("%s on %s", sc.Name, v.Selected.Name))
	if r := v.LastRun; r != nil {
		fmt.Fprintf(env.Out, "Portfolio value %s, VaR %s, volatility %s\n",
			format.SignedPercent(r.PortfolioValueChange),
			format.SignedPercent(r.VaRChange),
			format.SignedPercent(r.VolatilityChange))
	}
	printResults(env, v)
	return subcommands.ExitSuccess
}
