package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Back       key.Binding
	Reload     key.Binding
	Dashboard  key.Binding
	Portfolios key.Binding
	Risk       key.Binding
	Scenarios  key.Binding
	Monitoring key.Binding
	Up         key.Binding
	Down       key.Binding
	Focus      key.Binding
	Act        key.Binding
	New        key.Binding
	Edit       key.Binding
	Calculate  key.Binding
	Horizon    key.Binding
	Confidence key.Binding
	Template   key.Binding
	AddPreset  key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Dashboard:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
	Portfolios: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "portfolios")),
	Risk:       key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "risk")),
	Scenarios:  key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "scenarios")),
	Monitoring: key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "monitoring")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list")),
	Act:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run/toggle/read")),
	New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit threshold")),
	Calculate:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "calculate")),
	Horizon:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "horizon")),
	Confidence: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "confidence")),
	Template:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "next preset")),
	AddPreset:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add preset")),
}

// pageHelp lists the bindings shown in the footer of each page.
func pageHelp(p Page) []key.Binding {
	common := []key.Binding{keys.Reload, keys.Quit}
	switch p {
	case PagePortfolios:
		return append([]key.Binding{keys.Up, keys.Down, keys.New}, common...)
	case PageRisk:
		return append([]key.Binding{keys.Up, keys.Down, keys.Horizon, keys.Confidence, keys.Calculate}, common...)
	case PageScenarios:
		return append([]key.Binding{keys.Focus, keys.Up, keys.Down, keys.Act, keys.New, keys.Template, keys.AddPreset}, common...)
	case PageMonitoring:
		return append([]key.Binding{keys.Focus, keys.Up, keys.Down, keys.Act, keys.New, keys.Edit}, common...)
	default:
		return common
	}
}
