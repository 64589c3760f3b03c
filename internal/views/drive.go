package views

import tea "github.com/charmbracelet/bubbletea"

// Model is a view that consumes messages.
type Model interface {
	Update(msg tea.Msg) tea.Cmd
}

// Drive runs cmd and every command it leads to, feeding each message into
// m, until nothing is left. Batches are run one command at a time.
func Drive(m Model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, m.Update(msg))
		}
	}
}
