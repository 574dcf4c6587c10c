package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. Colors are hex strings.
type Theme struct {
	Name string

	Background string
	Surface    string // header, footer and cards
	SurfaceAlt string // overlays

	SelectionBg   string
	SelectionText string
	BorderFocus   string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// BadgeColors is keyed by the badge* names below.
	BadgeColors map[string]string
}

const (
	badgeSector  = "sector"
	badgeMatriz  = "matriz"
	badgeFilial  = "filial"
	badgeLoading = "loading"
	badgeFailed  = "failed"
)

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	DangerText  lipgloss.Style

	Header  lipgloss.Style
	Footer  lipgloss.Style
	Logo    lipgloss.Style
	Banner  lipgloss.Style
	Overlay lipgloss.Style

	badgeColors map[string]string
	badgeText   string
	badgeFall   string
}

// Styles builds the styles for t.
func (t Theme) Styles() Styles {
	fg := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	bar := func(color string) lipgloss.Style {
		return fg(color).Background(lipgloss.Color(t.Surface)).Padding(0, 1)
	}
	boxed := func(border string) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(1, 2)
	}

	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		DangerText:  fg(t.Danger).Bold(true),

		Header:  bar(t.Text),
		Footer:  bar(t.Muted),
		Logo:    fg(t.Warning).Bold(true),
		Banner:  boxed(t.Danger).Foreground(lipgloss.Color(t.Text)),
		Overlay: boxed(t.BorderFocus),

		badgeColors: t.BadgeColors,
		badgeText:   t.Background,
		badgeFall:   t.Muted,
	}
}

// BadgeStyle returns a filled badge for name, in the muted color when the
// theme has none for it.
func (s Styles) BadgeStyle(name string) lipgloss.Style {
	color, ok := s.badgeColors[name]
	if !ok || color == "" {
		color = s.badgeFall
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.badgeText)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground paints every text and bar style onto bgColor, so text drawn
// on a surface does not fall back to the terminal background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	for _, st := range []*lipgloss.Style{
		&s.Text, &s.MutedText, &s.FaintText, &s.AccentText, &s.SuccessText, &s.DangerText,
		&s.Header, &s.Footer, &s.Logo,
	} {
		*st = st.Background(bg)
	}
	return s
}

// badges lists the badge colors in a fixed order: sector, headquarters,
// branch, loading, failed.
func badges(sector, matriz, filial, loading, failed string) map[string]string {
	return map[string]string{
		badgeSector:  sector,
		badgeMatriz:  matriz,
		badgeFilial:  filial,
		badgeLoading: loading,
		badgeFailed:  failed,
	}
}

// Palettes from draculatheme.com, nightfox.nvim, kanagawa.nvim and the
// Tailwind slate/sky scale. The first entry is the default.
var palettes = []Theme{
	{
		Name: "Dracula",
		Background: "#21222c", Surface: "#282a36", SurfaceAlt: "#343746",
		SelectionBg: "#44475a", SelectionText: "#f8f8f2", BorderFocus: "#bd93f9",
		Text: "#f8f8f2", Muted: "#a0a4c0", Faint: "#6272a4", Accent: "#bd93f9",
		Success: "#50fa7b", Warning: "#f1fa8c", Danger: "#ff5555",
		BadgeColors: badges("#8be9fd", "#ffb86c", "#6272a4", "#bd93f9", "#ff5555"),
	},
	{
		Name: "Nightfox",
		Background: "#131a24", Surface: "#192330", SurfaceAlt: "#212e3f",
		SelectionBg: "#2b3b51", SelectionText: "#cdcecf", BorderFocus: "#719cd6",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b", Accent: "#719cd6",
		Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d",
		BadgeColors: badges("#63cdcf", "#f4a261", "#738091", "#9d79d6", "#c94f6d"),
	},
	{
		Name: "Kanagawa",
		Background: "#16161D", Surface: "#1F1F28", SurfaceAlt: "#2A2A37",
		SelectionBg: "#2D4F67", SelectionText: "#DCD7BA", BorderFocus: "#7E9CD8",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169", Accent: "#7E9CD8",
		Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876",
		BadgeColors: badges("#7FB4CA", "#FFA066", "#727169", "#957FB8", "#E46876"),
	},
	{
		Name: "Slate",
		Background: "#020617", Surface: "#0f172a", SurfaceAlt: "#1e293b",
		SelectionBg: "#0284c7", SelectionText: "#f8fafc", BorderFocus: "#38bdf8",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b", Accent: "#38bdf8",
		Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444",
		BadgeColors: badges("#06b6d4", "#f59e0b", "#64748b", "#6366f1", "#dc2626"),
	},
}

// GetTheme returns the palette called name, or the default one.
func GetTheme(name string) Theme {
	for _, t := range palettes {
		if t.Name == name {
			return t
		}
	}
	return palettes[0]
}

// NextTheme returns the palette after current, wrapping around. Unknown
// names restart at the default.
func NextTheme(current string) string {
	for i, t := range palettes {
		if t.Name == current {
			return palettes[(i+1)%len(palettes)].Name
		}
	}
	return palettes[0].Name
}

// ThemeNames lists the palettes in cycle order.
func ThemeNames() []string {
	names := make([]string, len(palettes))
	for i, t := range palettes {
		names[i] = t.Name
	}
	return names
}
