// Package cli implements the riskdeskctl subcommands.
//
// Every command drives the same page views as the terminal UI, synchronously,
// and prints the resulting state as tables.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/views"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Env is handed to every command through Commander.Execute.
type Env struct {
	Backend views.Backend
	Log     zerolog.Logger
	Out     io.Writer
	Err     io.Writer
	Risk    views.RiskOptions
}

// Register adds the riskdeskctl commands to c.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&portfoliosCmd{}, "portfolios")
	c.Register(&createPortfolioCmd{}, "portfolios")
	c.Register(&positionsCmd{}, "portfolios")

	c.Register(&riskCmd{}, "risk")
	c.Register(&calculateCmd{}, "risk")

	c.Register(&scenariosCmd{}, "scenarios")
	c.Register(&createScenarioCmd{}, "scenarios")
	c.Register(&runScenarioCmd{}, "scenarios")

	c.Register(&limitsCmd{}, "monitoring")
	c.Register(&addLimitCmd{}, "monitoring")
	c.Register(&toggleLimitCmd{}, "monitoring")
	c.Register(&alertsCmd{}, "monitoring")
	c.Register(&markReadCmd{}, "monitoring")
}

var errNoPortfolios = errors.New("no portfolios")

func envFrom(args []interface{}) *Env {
	if len(args) == 0 {
		return nil
	}
	env, _ := args[0].(*Env)
	return env
}

// portfolioPage is a view scoped to a selected portfolio.
type portfolioPage interface {
	views.Model
	Select(id string) tea.Cmd
}

// selectPortfolio moves page to the portfolio matching ref by id or name.
// An empty ref keeps the default selection, the first portfolio.
func selectPortfolio(page portfolioPage, sel *views.Selection, ref string) error {
	if ref == "" {
		if !sel.HasSelection() {
			return errNoPortfolios
		}
		return nil
	}
	for _, p := range sel.Portfolios {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			views.Drive(page, page.Select(p.ID))
			return nil
		}
	}
	return fmt.Errorf("portfolio %q not found", ref)
}

// check reports a failed page operation on stderr.
func check(env *Env, lc *views.Lifecycle) subcommands.ExitStatus {
	if lc.Err == nil {
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(env.Err, "%s\n  %v\n", lc.ErrorMessage(), lc.Err.Err)
	if api.IsNotFound(lc.Err) {
		fmt.Fprintln(env.Err, "  the backend has no such record; list again for current ids")
	}
	return subcommands.ExitFailure
}

func failf(env *Env, format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(env.Err, format+"\n", args...)
	return subcommands.ExitFailure
}

func usagef(env *Env, format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(env.Err, format+"\n", args...)
	return subcommands.ExitUsageError
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(w, t.Render())
}

func heading(w io.Writer, text string) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(text))
}
