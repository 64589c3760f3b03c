// Package theme holds the terminal palette and the styles built from it.
package theme

import (
	"fmt"
	"math"
	"strings"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the semantic color palette for the terminal UI.
type Theme struct {
	Base     lipgloss.Color
	Surface  lipgloss.Color
	Border   lipgloss.Color
	Muted    lipgloss.Color
	Text     lipgloss.Color
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Gain     lipgloss.Color
	Loss     lipgloss.Color
	Warning  lipgloss.Color
	Critical lipgloss.Color
	Info     lipgloss.Color
}

// Default is a dark palette.
var Default = Theme{
	Base:     lipgloss.Color("#201F26"),
	Surface:  lipgloss.Color("#2D2C35"),
	Border:   lipgloss.Color("#4D4C57"),
	Muted:    lipgloss.Color("#858392"),
	Text:     lipgloss.Color("#DFDBDD"),
	Primary:  lipgloss.Color("#6B50FF"),
	Accent:   lipgloss.Color("#FF60FF"),
	Gain:     lipgloss.Color("#00FFB2"),
	Loss:     lipgloss.Color("#E94090"),
	Warning:  lipgloss.Color("#FFD300"),
	Critical: lipgloss.Color("#FF4F4F"),
	Info:     lipgloss.Color("#00CED1"),
}

// Styles are the reusable text styles of the UI.
type Styles struct {
	Title    lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
}

// NewStyles derives the UI styles from t.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Tab:      lipgloss.NewStyle().Padding(0, 1).Foreground(t.Muted),
		TabOn:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(t.Base).Background(t.Primary),
		Label:    lipgloss.NewStyle().Foreground(t.Muted),
		Value:    lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Error:    lipgloss.NewStyle().Foreground(t.Critical).Border(lipgloss.RoundedBorder()).BorderForeground(t.Critical).Padding(0, 1),
		Help:     lipgloss.NewStyle().Foreground(t.Muted),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
	}
}

// SeverityColor maps an alert severity onto the palette.
func (t Theme) SeverityColor(s domain.Severity) lipgloss.Color {
	switch s {
	case domain.SeverityCritical:
		return t.Critical
	case domain.SeverityWarning:
		return t.Warning
	default:
		return t.Muted
	}
}

// ChangeColor colors a signed change: losses red, gains green.
func (t Theme) ChangeColor(v float64) lipgloss.Color {
	if v < 0 {
		return t.Loss
	}
	return t.Gain
}

// GradientText applies a horizontal color gradient across each line of text.
func GradientText(text string, from, to lipgloss.Color) string {
	fr, fg, fb := hexToRGB(string(from))
	tr, tg, tb := hexToRGB(string(to))

	lines := strings.Split(text, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		runes := []rune(line)
		n := len(runes)
		if n == 0 {
			result = append(result, "")
			continue
		}

		var sb strings.Builder
		for i, r := range runes {
			t := 0.0
			if n > 1 {
				t = float64(i) / float64(n-1)
			}
			cr := lerp(fr, tr, t)
			cg := lerp(fg, tg, t)
			cb := lerp(fb, tb, t)

			color := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", cr, cg, cb))
			sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(r)))
		}
		result = append(result, sb.String())
	}
	return strings.Join(result, "\n")
}

func lerp(from, to uint8, t float64) uint8 {
	return uint8(math.Round(float64(from) + t*float64(int(to)-int(from))))
}

func hexToRGB(hex string) (uint8, uint8, uint8) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0
	}
	return r, g, b
}
