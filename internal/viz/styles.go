package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from one Theme.
type Styles struct {
	Theme Theme

	Card      lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Key       lipgloss.Style
	Button    lipgloss.Style
	Mesh      lipgloss.Style
	Mass      lipgloss.Style
	Chart     lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	Thinking  lipgloss.Style
	Failure   lipgloss.Style
	Input     lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Surface).
			Padding(1, 3),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.ThickBorder()).
			BorderRight(true).
			BorderForeground(t.Primary).
			PaddingRight(1),
		Subtitle:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Body:      lipgloss.NewStyle().Foreground(t.Text),
		Muted:     lipgloss.NewStyle().Foreground(t.Muted),
		Key:       lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Button:    lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(t.Text).Bold(true).Padding(0, 3),
		Mesh:      lipgloss.NewStyle().Foreground(t.Primary),
		Mass:      lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Chart:     lipgloss.NewStyle().Foreground(t.Muted),
		User:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(t.Secondary).Padding(0, 1),
		Assistant: lipgloss.NewStyle().Foreground(t.Text).Border(lipgloss.NormalBorder()).BorderForeground(t.Surface).Padding(0, 1),
		Thinking:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Failure:   lipgloss.NewStyle().Foreground(t.Error).Border(lipgloss.NormalBorder()).BorderForeground(t.Error).Padding(0, 1),
		Input:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Secondary).Padding(0, 1),
	}
}

// GradientText creates a gradient effect on text using color interpolation
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(string(startColor))
	er, eg, eb := parseHex(string(endColor))

	var result strings.Builder
	n := len(runes)

	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		b := int(float64(sb) + t*float64(eb-sb))

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(r, g, b))).Bold(true)
		result.WriteString(style.Render(string(c)))
	}

	return result.String()
}

// ProgressBar renders the deck progress as a gradient bar.
func ProgressBar(percent float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := GradientText(strings.Repeat("━", filled), t.Primary, t.Secondary)
	return bar + lipgloss.NewStyle().Foreground(t.Surface).Render(strings.Repeat("━", width-filled))
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	r = parseHexByte(hex[1:3])
	g = parseHexByte(hex[3:5])
	b = parseHexByte(hex[5:7])
	return
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		if c >= '0' && c <= '9' {
			val += int(c - '0')
		} else if c >= 'a' && c <= 'f' {
			val += int(c - 'a' + 10)
		} else if c >= 'A' && c <= 'F' {
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
