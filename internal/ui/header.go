package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vfpar/registro/internal/state"
)

// renderHeader renders the title bar with the collection counters and the
// load status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newSurface(m.theme.Surface)

	parts := []string{
		bg.paint("registro", styles.Logo),
		bg.paint("Empresas", styles.MutedText) + bg.gap(1) +
			bg.paint(fmt.Sprintf("%d", len(m.snapshot.Companies)), styles.Text.Bold(true)),
		bg.paint("Setores", styles.MutedText) + bg.gap(1) +
			bg.paint(fmt.Sprintf("%d", m.snapshot.SectorCount()), styles.Text.Bold(true)),
	}

	status := m.statusLine()
	switch m.snapshot.Status {
	case state.StatusLoading:
		parts = append(parts, m.spinner.View()+bg.gap(1)+bg.paint(status, styles.BadgeStyle(badgeLoading)))
	case state.StatusFailed:
		parts = append(parts, bg.paint(status, styles.BadgeStyle(badgeFailed)))
	default:
		parts = append(parts, bg.paint(status, styles.MutedText))
	}

	if m.width >= LayoutWideWidth {
		parts = append(parts, bg.paint("tema "+m.theme.Name, styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.join(parts, "  "))
}

// renderSearchBar renders the search input, the active term or a hint.
func (m Model) renderSearchBar() string {
	styles := m.theme.Styles()
	line := lipgloss.NewStyle().Padding(0, 1).Width(m.width)

	if m.searching {
		count := styles.FaintText.Render(fmt.Sprintf("  %d de %d", len(m.visible), len(m.snapshot.Companies)))
		return line.Render(m.search.View() + count)
	}

	term := m.snapshot.SearchTerm
	if term == "" {
		return line.Render(styles.FaintText.Render("/ buscar por nome, setor ou localização"))
	}
	return line.Render(
		styles.AccentText.Render("/ ") +
			styles.Text.Render(truncate(term, maxInt(m.width/2, 10))) +
			styles.FaintText.Render(fmt.Sprintf("  %d de %d  ·  c limpar", len(m.visible), len(m.snapshot.Companies))),
	)
}
