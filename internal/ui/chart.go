package ui

import (
	"strings"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Eighth-block runes, index n fills n/8 of a cell.
var blockChars = [9]rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// varSeries returns the VaR percentages of history in chronological order.
// History arrives newest first.
func varSeries(history []domain.RiskCalculation) []float64 {
	out := make([]float64, len(history))
	for i, calc := range history {
		out[len(history)-1-i] = calc.VaRPercentage
	}
	return out
}

// renderAreaChart draws data as a filled block chart of the given size.
// Columns at or above threshold use hot, the rest use cool.
func renderAreaChart(data []float64, threshold float64, width, height int, hot, cool lipgloss.Color) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	cols := downsample(data, width)
	lo, hi := cols[0], cols[0]
	for _, v := range cols {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	levels := height * 8
	scaled := make([]int, len(cols))
	for i, v := range cols {
		// Every column gets at least one level so flat series stay visible.
		scaled[i] = min(int((v-lo)/span*float64(levels-1))+1, levels)
	}

	hotStyle := lipgloss.NewStyle().Foreground(hot)
	coolStyle := lipgloss.NewStyle().Foreground(cool)

	rows := make([]string, 0, height)
	for row := 0; row < height; row++ {
		floor := (height - 1 - row) * 8
		var sb strings.Builder
		blank := true
		for i, s := range scaled {
			fill := min(s-floor, 8)
			if fill <= 0 {
				sb.WriteRune(' ')
				continue
			}
			blank = false
			style := coolStyle
			if cols[i] >= threshold {
				style = hotStyle
			}
			sb.WriteString(style.Render(string(blockChars[fill])))
		}
		if blank && len(rows) == 0 {
			continue
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "\n")
}

// downsample averages data into at most n buckets.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return append([]float64(nil), data...)
	}

	out := make([]float64, n)
	size := float64(len(data)) / float64(n)
	for i := range out {
		start := int(float64(i) * size)
		end := min(int(float64(i+1)*size), len(data))
		sum := 0.0
		for _, v := range data[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}
