package theme

import (
	"testing"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSeverityColor(t *testing.T) {
	assert.Equal(t, Default.Critical, Default.SeverityColor(domain.SeverityCritical))
	assert.Equal(t, Default.Warning, Default.SeverityColor(domain.SeverityWarning))
	assert.Equal(t, Default.Muted, Default.SeverityColor(domain.SeverityUnknown))
}

func TestChangeColor(t *testing.T) {
	assert.Equal(t, Default.Loss, Default.ChangeColor(-0.1))
	assert.Equal(t, Default.Gain, Default.ChangeColor(0))
}

func TestHexToRGB(t *testing.T) {
	r, g, b := hexToRGB("#6B50FF")
	assert.Equal(t, []uint8{0x6b, 0x50, 0xff}, []uint8{r, g, b})

	r, g, b = hexToRGB("nope")
	assert.Equal(t, []uint8{0, 0, 0}, []uint8{r, g, b})
}

func TestGradientText_KeepsLines(t *testing.T) {
	out := GradientText("ab\n\ncd", Default.Primary, Default.Accent)
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "d")
	assert.Equal(t, 2, countNewlines(out))
}

func countNewlines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
