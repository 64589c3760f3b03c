package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/aristath/riskdesk/internal/format"
	"github.com/aristath/riskdesk/internal/views"
	"github.com/google/subcommands"
)

func loadMonitoring(ctx context.Context, env *Env, ref string) (*views.MonitoringView, subcommands.ExitStatus) {
	v := views.NewMonitoringView(ctx, env.Backend, env.Log)
	views.Drive(v, v.Load())
	if status := check(env, &v.Lifecycle); status != subcommands.ExitSuccess {
		return nil, status
	}
	if err := selectPortfolio(v, &v.Selection, ref); err != nil {
		return nil, failf(env, "%v", err)
	}
	return v, check(env, &v.Lifecycle)
}

func printLimits(env *Env, limits []domain.RiskLimit) {
	if len(limits) == 0 {
		fmt.Fprintln(env.Out, "No limits.")
		return
	}
	rows := make([][]string, 0, len(limits))
	for _, l := range limits {
		rows = append(rows, []string{l.ID, l.LimitType.Label(), format.Threshold(l.LimitType, l.ThresholdValue), format.Active(l.IsActive)})
	}
	renderTable(env.Out, []string{"ID", "Type", "Threshold", "State"}, rows)
}

type limitsCmd struct {
	portfolio string
}

func (*limitsCmd) Name() string     { return "limits" }
func (*limitsCmd) Synopsis() string { return "list the risk limits of a portfolio" }
func (*limitsCmd) Usage() string {
	return `riskdeskctl limits [-p <portfolio>]
`
}

func (c *limitsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id or name.")
}

func (c *limitsCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	v, status := loadMonitoring(ctx, env, c.portfolio)
	if status != subcommands.ExitSuccess {
		return status
	}
	heading(env.Out, fmt.Sprintf("%s: %d of %d limits active", v.Selected.Name, v.ActiveLimitCount(), len(v.Limits)))
	printLimits(env, v.Limits)
	return subcommands.ExitSuccess
}

type addLimitCmd struct {
	portfolio string
	limitType string
	threshold float64
}

func (*addLimitCmd) Name() string     { return "add-limit" }
func (*addLimitCmd) Synopsis() string { return "add a risk limit to a portfolio" }
func (*addLimitCmd) Usage() string {
	types := make([]string, 0, len(domain.LimitTypes))
	for _, info := range domain.LimitTypes {
		types = append(types, string(info.Type))
	}
	return fmt.Sprintf(`riskdeskctl add-limit -type <type> -threshold <value> [-p <portfolio>]

  Types: %s.
`, strings.Join(types, ", "))
}

func (c *addLimitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id or name.")
	f.StringVar(&c.limitType, "type", "", "Limit type (required).")
	f.Float64Var(&c.threshold, "threshold", 0, "Threshold value.")
}

func (c *addLimitCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	limitType := domain.LimitType(strings.ToLower(c.limitType))
	if !limitType.Known() {
		return usagef(env, "unknown limit type %q", c.limitType)
	}
	v, status := loadMonitoring(ctx, env, c.portfolio)
	if status != subcommands.ExitSuccess {
		return status
	}

	views.Drive(v, v.CreateLimit(limitType, c.threshold))
	if status := check(env, &v.Lifecycle); status != subcommands.ExitSuccess {
		return status
	}
	printLimits(env, v.Limits)
	return subcommands.ExitSuccess
}

type toggleLimitCmd struct {
	portfolio string
	id        string
	threshold float64
}

func (*toggleLimitCmd) Name() string     { return "toggle-limit" }
func (*toggleLimitCmd) Synopsis() string { return "activate or deactivate a risk limit" }
func (*toggleLimitCmd) Usage() string {
	return `riskdeskctl toggle-limit -id <limit id> [-p <portfolio>] [-threshold <value>]

  With -threshold the limit keeps its state and gets the new threshold instead.
`
}

func (c *toggleLimitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id or name.")
	f.StringVar(&c.id, "id", "", "Limit id (required).")
	f.Float64Var(&c.threshold, "threshold", 0, "Set this threshold instead of toggling.")
}

func (c *toggleLimitCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	if c.id == "" {
		return usagef(env, "-id is required")
	}
	v, status := loadMonitoring(ctx, env, c.portfolio)
	if status != subcommands.ExitSuccess {
		return status
	}
	if _, ok := v.Limit(c.id); !ok {
		return failf(env, "limit %q not found in %s", c.id, v.Selected.Name)
	}

	thresholdSet := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "threshold" {
			thresholdSet = true
		}
	})
	if thresholdSet {
		views.Drive(v, v.SetThreshold(c.id, c.threshold))
	} else {
		views.Drive(v, v.ToggleLimit(c.id))
	}
	if status := check(env, &v.Lifecycle); status != subcommands.ExitSuccess {
		return status
	}
	printLimits(env, v.Limits)
	return subcommands.ExitSuccess
}

type alertsCmd struct {
	portfolio string
	unread    bool
}

func (*alertsCmd) Name() string     { return "alerts" }
func (*alertsCmd) Synopsis() string { return "list the alerts of a portfolio" }
func (*alertsCmd) Usage() string {
	return `riskdeskctl alerts [-p <portfolio>] [-unread]
`
}

func (c *alertsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id or name.")
	f.BoolVar(&c.unread, "unread", false, "Only unread alerts.")
}

func (c *alertsCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	v, status := loadMonitoring(ctx, env, c.portfolio)
	if status != subcommands.ExitSuccess {
		return status
	}

	alerts := v.Alerts
	if c.unread {
		alerts = v.UnreadAlerts()
	}
	if len(alerts) == 0 {
		fmt.Fprintln(env.Out, "No alerts.")
		return subcommands.ExitSuccess
	}
	rows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		state := "unread"
		if a.IsRead {
			state = "read"
		}
		rows = append(rows, []string{a.ID, strings.ToUpper(string(a.Severity)), a.Message, state, format.Date(a.CreatedAt)})
	}
	renderTable(env.Out, []string{"ID", "Severity", "Message", "State", "Created"}, rows)
	return subcommands.ExitSuccess
}

type markReadCmd struct {
	portfolio string
	id        string
}

func (*markReadCmd) Name() string     { return "mark-read" }
func (*markReadCmd) Synopsis() string { return "mark an alert as read" }
func (*markReadCmd) Usage() string {
	return `riskdeskctl mark-read -id <alert id> [-p <portfolio>]
`
}

func (c *markReadCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id or name.")
	f.StringVar(&c.id, "id", "", "Alert id (required).")
}

func (c *markReadCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	if c.id == "" {
		return usagef(env, "-id is required")
	}
	v, status := loadMonitoring(ctx, env, c.portfolio)
	if status != subcommands.ExitSuccess {
		return status
	}

	views.Drive(v, v.MarkAlertRead(c.id))
	if status := check(env, &v.Lifecycle); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(env.Out, "Marked %s read; %d unread left\n", c.id, len(v.UnreadAlerts()))
	return subcommands.ExitSuccess
}
