package ui

import (
	"strings"

	"github.com/aristath/riskdesk/internal/theme"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField struct {
	label       string
	placeholder string
	value       string
}

// form collects text values and hands them to submit on enter.
// A validation error from submit keeps the form open.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	err    string
	submit func(values []string) (tea.Cmd, error)
}

var (
	formNext   = key.NewBinding(key.WithKeys("tab", "down"))
	formPrev   = key.NewBinding(key.WithKeys("shift+tab", "up"))
	formSubmit = key.NewBinding(key.WithKeys("enter"))
	formCancel = key.NewBinding(key.WithKeys("esc"))
)

func newForm(title string, fields []formField, submit func(values []string) (tea.Cmd, error)) *form {
	f := &form{title: title, submit: submit}
	for i, field := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = field.placeholder
		ti.SetValue(field.value)
		ti.CharLimit = 128
		ti.Width = 32
		if i == 0 {
			ti.Focus()
		}
		f.labels = append(f.labels, field.label)
		f.inputs = append(f.inputs, ti)
	}
	return f
}

func (f *form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (f *form) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// update handles a key press. closed reports that the form is finished,
// either submitted or cancelled.
func (f *form) update(msg tea.KeyMsg) (closed bool, cmd tea.Cmd) {
	switch {
	case key.Matches(msg, formCancel):
		return true, nil
	case key.Matches(msg, formSubmit):
		cmd, err := f.submit(f.values())
		if err != nil {
			f.err = err.Error()
			return false, nil
		}
		return true, cmd
	case key.Matches(msg, formNext):
		f.move(1)
		return false, nil
	case key.Matches(msg, formPrev):
		f.move(-1)
		return false, nil
	}

	var inputCmd tea.Cmd
	f.inputs[f.focus], inputCmd = f.inputs[f.focus].Update(msg)
	return false, inputCmd
}

func (f *form) view(s theme.Styles) string {
	width := 0
	for _, l := range f.labels {
		width = max(width, lipgloss.Width(l))
	}

	lines := []string{s.Title.Render(f.title), ""}
	for i, in := range f.inputs {
		label := s.Label.Width(width + 2).Render(f.labels[i])
		if i == f.focus {
			label = s.Selected.Width(width + 2).Render(f.labels[i])
		}
		lines = append(lines, label+in.View())
	}
	if f.err != "" {
		lines = append(lines, "", s.Error.Render(f.err))
	}
	lines = append(lines, "", s.Help.Render("enter submit · tab next field · esc cancel"))
	return s.Card.Render(strings.Join(lines, "\n"))
}
