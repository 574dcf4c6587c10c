package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/vfpar/registro/internal/registry"
	"github.com/vfpar/registro/internal/state"
)

// renderContent picks what fills the area between the search bar and the
// footer. A failed load replaces the list until a retry succeeds.
func (m Model) renderContent() string {
	switch {
	case m.snapshot.Status == state.StatusFailed:
		return m.renderFailure()
	case !m.snapshot.HasData():
		return m.renderLoading()
	case len(m.visible) == 0:
		return m.renderEmpty()
	}
	return m.renderList()
}

func (m Model) contentHeight() int {
	return maxInt(m.height-chromeHeight, 1)
}

func (m Model) renderLoading() string {
	styles := m.theme.Styles()
	text := m.spinner.View() + " " + styles.MutedText.Render("Carregando empresas...")
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, text)
}

func (m Model) renderFailure() string {
	styles := m.theme.Styles()
	width := minInt(maxInt(m.width-8, 20), 72)

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Erro de Carregamento"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(wordwrap.String(m.snapshot.Message, width-6)))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Bold(true).Render("r") + " " + styles.MutedText.Render("tentar novamente"))

	banner := styles.Banner.Width(width).Render(b.String())
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, banner)
}

func (m Model) renderEmpty() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Nada por aqui..."))
	b.WriteString("\n")
	if m.snapshot.SearchTerm != "" {
		b.WriteString(styles.MutedText.Render("Não encontramos empresas com esses critérios de busca."))
		b.WriteString("\n\n")
		b.WriteString(styles.AccentText.Bold(true).Render("c") + " " + styles.MutedText.Render("limpar filtros"))
	} else {
		b.WriteString(styles.MutedText.Render("Nenhuma empresa cadastrada na fonte de dados."))
		b.WriteString("\n\n")
		b.WriteString(styles.AccentText.Bold(true).Render("r") + " " + styles.MutedText.Render("recarregar"))
	}
	block := lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String())
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, block)
}

// renderList renders the page of cards around the cursor.
func (m Model) renderList() string {
	page := m.pageSize()
	end := minInt(m.offset+page, len(m.visible))

	cards := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		cards = append(cards, m.renderCard(m.visible[i], i == m.cursor))
	}
	return strings.Join(cards, "\n")
}

// renderCard renders one record as two lines plus a spacer line.
func (m Model) renderCard(c registry.Company, selected bool) string {
	styles := m.theme.Styles()
	bgColor := m.theme.Background
	nameStyle := styles.Text.Bold(true)
	marker := " "
	if selected {
		bgColor = m.theme.SelectionBg
		nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText)).Bold(true)
		marker = "▌"
	}
	bg := newSurface(bgColor)
	width := maxInt(m.width-2, 20)

	initial := lipgloss.NewStyle().
		Background(lipgloss.Color(ternary(c.IsHeadquarters(), m.theme.Warning, m.theme.Accent))).
		Foreground(lipgloss.Color(m.theme.Background)).
		Bold(true).
		Padding(0, 1).
		Render(c.Initial())

	badge := ""
	if sector := strings.TrimSpace(c.Sector); sector != "" {
		badge = styles.BadgeStyle(badgeSector).Render(truncate(sector, 24))
	}

	const indent = 6
	nameWidth := maxInt(width-indent-lipgloss.Width(badge)-1, 4)
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = registry.PlaceholderNotProvided
	}

	line1 := bg.paint(marker, styles.AccentText) + bg.gap(1) + initial + bg.gap(1) +
		bg.paint(padRight(truncate(name, nameWidth), nameWidth), nameStyle) + bg.gap(1) + badge
	line2 := bg.gap(indent) + bg.paint(truncate(m.cardDetails(c, width-indent), width-indent), styles.MutedText)

	return bg.fill(line1, width) + "\n" + bg.fill(line2, width) + "\n"
}

// cardDetails joins location, tax id and a description excerpt. Narrow
// terminals only get the location.
func (m Model) cardDetails(c registry.Company, width int) string {
	location := strings.TrimSpace(c.Location)
	if location == "" {
		location = registry.PlaceholderNotProvided
	}
	if m.width < LayoutCompactWidth {
		return location
	}

	taxID := strings.TrimSpace(c.TaxID)
	if taxID == "" {
		taxID = registry.PlaceholderShort
	}
	parts := []string{location, "CNPJ " + taxID}
	head := strings.Join(parts, " · ")
	if desc := strings.TrimSpace(c.Description); desc != "" {
		room := width - len([]rune(head)) - 3
		if room > 8 {
			parts = append(parts, excerpt(desc, room))
		}
	}
	return strings.Join(parts, " · ")
}
