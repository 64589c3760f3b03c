package ui

import (
	"fmt"
	"strings"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/aristath/riskdesk/internal/format"
	"github.com/aristath/riskdesk/internal/theme"
	"github.com/aristath/riskdesk/internal/views"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const chartHeight = 6

func (m Model) View() string {
	t := m.theme
	s := m.styles

	parts := []string{m.viewHeader(), ""}

	lc := m.lifecycle()
	switch {
	case lc.Err != nil:
		parts = append(parts, s.Error.Render(lc.ErrorMessage()), "")
	case lc.Loading():
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Info).Render("Loading..."), "")
	}

	if m.form != nil {
		parts = append(parts, m.form.view(s))
	} else {
		parts = append(parts, m.viewPage())
	}

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(t.Primary)
	h.Styles.ShortDesc = s.Help
	parts = append(parts, "", h.ShortHelpView(pageHelp(m.page)))

	out := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.NewStyle().Padding(0, 1).Render(out)
}

func (m Model) viewHeader() string {
	s := m.styles
	title := theme.GradientText("riskdesk", m.theme.Primary, m.theme.Accent)

	tabs := make([]string, 0, len(pageNames))
	for i, name := range pageNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Page(i) == m.page {
			tabs = append(tabs, s.TabOn.Render(label))
		} else {
			tabs = append(tabs, s.Tab.Render(label))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", strings.Join(tabs, ""))
	if m.opts.APIURL != "" {
		row = lipgloss.JoinVertical(lipgloss.Left, row, s.Muted.Render(m.opts.APIURL))
	}
	return row
}

func (m Model) viewPage() string {
	switch m.page {
	case PagePortfolios:
		return m.viewPortfolios()
	case PageRisk:
		return m.viewRisk()
	case PageScenarios:
		return m.viewScenarios()
	case PageMonitoring:
		return m.viewMonitoring()
	default:
		return m.viewDashboard()
	}
}

func (m Model) newTable(headers ...string) *table.Table {
	t := m.theme
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(t.Muted).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1)
		})
}

func (m Model) field(label, value string) string {
	return m.styles.Label.Render(label+": ") + m.styles.Value.Render(value)
}

func (m Model) viewDashboard() string {
	d := m.dashboard
	s := m.styles

	p := d.Portfolio()
	if p == nil {
		if !d.Loaded {
			return ""
		}
		return s.Muted.Render("No portfolios yet. Press 2 to create one.")
	}

	summary := []string{
		s.Title.Render(p.Name),
		m.field("Portfolios", fmt.Sprint(len(d.Portfolios))),
		m.field("Currency", p.Currency),
	}
	if r := d.LatestRisk; r != nil {
		summary = append(summary,
			m.field("VaR", format.Money(r.VaRValue, p.Currency)+" ("+format.Percent(r.VaRPercentage)+")"),
			m.field("CVaR", format.Money(r.CVaRValue, p.Currency)),
			m.field("Volatility", format.Percent(r.Volatility)),
			m.field("Sharpe", fmt.Sprintf("%.2f", r.SharpeRatio)),
			m.field("Calculated", format.Ago(r.CalculationDate)),
		)
	} else {
		summary = append(summary, s.Muted.Render("No risk calculation yet."))
	}

	alerts := []string{s.Title.Render(fmt.Sprintf("Unread alerts (%d critical)", d.CriticalAlerts()))}
	if len(d.Alerts) == 0 {
		alerts = append(alerts, s.Muted.Render("All clear."))
	}
	for _, a := range d.Alerts {
		alerts = append(alerts, m.alertLine(a))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.Card.Render(strings.Join(summary, "\n")),
		" ",
		s.Card.Render(strings.Join(alerts, "\n")),
	)
}

func (m Model) alertLine(a domain.Alert) string {
	sev := lipgloss.NewStyle().Bold(true).Foreground(m.theme.SeverityColor(a.Severity)).Render(strings.ToUpper(string(a.Severity)))
	return sev + " " + a.Message + " " + m.styles.Muted.Render(format.Ago(a.CreatedAt))
}

// portfolioList renders the selectable portfolio column shared by the
// portfolio-scoped pages.
func (m Model) portfolioList(sel *views.Selection) string {
	s := m.styles
	lines := []string{s.Title.Render("Portfolios")}
	if len(sel.Portfolios) == 0 {
		lines = append(lines, s.Muted.Render("none"))
	}
	for _, p := range sel.Portfolios {
		if p.ID == sel.SelectedID() {
			style := s.Selected
			if m.focusItems {
				style = s.Value
			}
			lines = append(lines, style.Render("▸ "+p.Name))
			continue
		}
		lines = append(lines, "  "+p.Name)
	}
	return s.Card.Render(strings.Join(lines, "\n"))
}

func (m Model) viewPortfolios() string {
	v := m.portfolios
	s := m.styles

	detail := []string{}
	if p := v.Selected; p != nil {
		detail = append(detail,
			s.Title.Render(p.Name),
			m.field("Currency", p.Currency),
			m.field("Created", format.Date(p.CreatedAt)),
		)
		if p.Description != "" {
			detail = append(detail, s.Muted.Render(p.Description))
		}
		detail = append(detail, "")

		if len(v.Positions) == 0 {
			detail = append(detail, s.Muted.Render("No positions."))
		} else {
			tbl := m.newTable("Ticker", "Quantity", "Weight", "Avg price")
			for _, pos := range v.Positions {
				tbl.Row(pos.Ticker(), format.Number(pos.Quantity), format.Weight(pos.Weight), format.Money(pos.AvgPurchasePrice, p.Currency))
			}
			detail = append(detail, tbl.Render())
		}
	}
	if v.Created != nil {
		detail = append(detail, "", s.Muted.Render("Created "+v.Created.Name))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, m.portfolioList(&v.Selection), " ", strings.Join(detail, "\n"))
}

func (m Model) viewRisk() string {
	v := m.risk
	s := m.styles

	currency := ""
	if v.Selected != nil {
		currency = v.Selected.Currency
	}

	settings := m.field("Horizon", format.Horizon(v.HorizonDays)) + "   " + m.field("Confidence", format.Confidence(v.Confidence))
	if v.Calculating {
		settings += "   " + lipgloss.NewStyle().Foreground(m.theme.Info).Render("calculating...")
	}
	detail := []string{settings, ""}

	if r := v.Latest; r != nil {
		detail = append(detail,
			m.field("VaR", format.Money(r.VaRValue, currency)+" ("+format.Percent(r.VaRPercentage)+")"),
			m.field("CVaR", format.Money(r.CVaRValue, currency)+" ("+format.Percent(r.CVaRPercentage)+")"),
			m.field("Volatility", format.Percent(r.Volatility)),
			m.field("Sharpe", fmt.Sprintf("%.2f", r.SharpeRatio)),
			m.field("Max drawdown", format.Percent(r.MaxDrawdown)),
			m.field("As of", format.Date(r.CalculationDate)+" · "+format.Horizon(r.HorizonDays)+" @ "+format.Confidence(r.ConfidenceLevel)),
		)
	} else if v.HasSelection() {
		detail = append(detail, s.Muted.Render("No calculation yet. Press c to calculate."))
	}

	if len(v.History) > 1 {
		series := varSeries(v.History)
		width := 40
		if m.width > 0 {
			width = max(10, min(len(series)*2, m.width/2))
		}
		detail = append(detail, "", s.Label.Render("VaR % history"),
			renderAreaChart(series, mean(series), width, chartHeight, m.theme.Loss, m.theme.Gain))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, m.portfolioList(&v.Selection), " ", strings.Join(detail, "\n"))
}

func (m Model) viewScenarios() string {
	v := m.scenarios
	s := m.styles

	list := []string{s.Title.Render("Scenarios")}
	for i, sc := range v.Scenarios {
		line := fmt.Sprintf("%s  %s", sc.Name, s.Muted.Render(sc.ScenarioType.Label()+" · "+format.Parameters(sc.Parameters)))
		if m.focusItems && i == m.cursor {
			line = s.Selected.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		list = append(list, line)
	}
	tpl := views.ScenarioTemplates[m.preset]
	list = append(list, "", s.Muted.Render("Preset: ")+tpl.Name)
	if v.Running {
		list = append(list, lipgloss.NewStyle().Foreground(m.theme.Info).Render("running..."))
	} else if r := v.LastRun; r != nil {
		list = append(list, s.Label.Render("Last run:")+" "+v.ScenarioName(r.ScenarioID)+" "+m.signed(r.PortfolioValueChange))
	}

	results := []string{s.Title.Render("Results")}
	if len(v.Results) == 0 {
		results = append(results, s.Muted.Render("No results for this portfolio."))
	} else {
		tbl := m.newTable("Scenario", "Value", "VaR", "Volatility", "When")
		for _, r := range v.Results {
			tbl.Row(
				v.ScenarioName(r.ScenarioID),
				m.signed(r.PortfolioValueChange),
				m.signed(r.VaRChange),
				m.signed(r.VolatilityChange),
				format.Ago(r.CalculatedAt),
			)
		}
		results = append(results, tbl.Render())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.portfolioList(&v.Selection), " ",
		lipgloss.JoinVertical(lipgloss.Left, s.Card.Render(strings.Join(list, "\n")), strings.Join(results, "\n")),
	)
}

func (m Model) signed(v float64) string {
	return lipgloss.NewStyle().Foreground(m.theme.ChangeColor(v)).Render(format.SignedPercent(v))
}

func (m Model) viewMonitoring() string {
	v := m.monitoring
	s := m.styles

	cursorAt := func(i int) string {
		if m.focusItems && i == m.cursor {
			return s.Selected.Render("▸ ")
		}
		return "  "
	}

	limits := []string{s.Title.Render(fmt.Sprintf("Limits (%d active)", v.ActiveLimitCount()))}
	if len(v.Limits) == 0 {
		limits = append(limits, s.Muted.Render("No limits."))
	}
	for i, l := range v.Limits {
		state := s.Muted.Render(format.Active(l.IsActive))
		if l.IsActive {
			state = lipgloss.NewStyle().Foreground(m.theme.Gain).Render(format.Active(true))
		}
		limits = append(limits, cursorAt(i)+l.LimitType.Label()+"  "+s.Value.Render(format.Threshold(l.LimitType, l.ThresholdValue))+"  "+state)
	}

	unread := v.UnreadAlerts()
	alerts := []string{s.Title.Render(fmt.Sprintf("Unread alerts (%d)", len(unread)))}
	for i, a := range unread {
		alerts = append(alerts, cursorAt(len(v.Limits)+i)+m.alertLine(a))
	}
	if read := v.ReadAlerts(); len(read) > 0 {
		alerts = append(alerts, "", s.Muted.Render(fmt.Sprintf("%d read", len(read))))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.portfolioList(&v.Selection), " ",
		lipgloss.JoinVertical(lipgloss.Left,
			s.Card.Render(strings.Join(limits, "\n")),
			s.Card.Render(strings.Join(alerts, "\n")),
		),
	)
}
