package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// surface paints segments of a line onto one background color. lipgloss
// resets the background after every styled run, so plain spaces between runs
// would show the terminal default; every gap is painted too.
type surface struct {
	color lipgloss.Color
	blank string // one painted space
}

func newSurface(color string) surface {
	c := lipgloss.Color(color)
	return surface{color: c, blank: lipgloss.NewStyle().Background(c).Render(" ")}
}

// paint renders text word by word with style on the surface color.
func (s surface) paint(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(s.color)
	var b strings.Builder
	for i, word := range strings.Split(text, " ") {
		if i > 0 {
			b.WriteString(s.blank)
		}
		if word != "" {
			b.WriteString(style.Render(word))
		}
	}
	return b.String()
}

// gap returns n painted spaces.
func (s surface) gap(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s.blank, n)
}

func (s surface) join(parts []string, sep string) string {
	return strings.Join(parts, s.paint(sep, lipgloss.NewStyle()))
}

// fill pads a rendered line to width with the surface color.
func (s surface) fill(line string, width int) string {
	return lipgloss.NewStyle().Background(s.color).Width(width).Render(line)
}
