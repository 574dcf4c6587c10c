package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/vfpar/registro/internal/registry"
)

// detailModal shows one selected record. Its body scrolls in a viewport.
type detailModal struct {
	view     registry.DetailView
	viewport viewport.Model
}

func newDetailModal(view registry.DetailView) detailModal {
	return detailModal{view: view, viewport: viewport.New(0, 0)}
}

// Resize lays the body out for the current theme and terminal size.
func (d detailModal) Resize(theme Theme, width, height int) Modal {
	inner := overlayWidth(width) - 4
	d.viewport.Width = inner
	d.viewport.Height = maxInt(height-11, 3)
	d.viewport.SetContent(detailBody(d.view, theme, inner))
	return d
}

func (d detailModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil, false
	}
	switch {
	case key.Matches(km, keys.Close), key.Matches(km, keys.Quit):
		return d, nil, true
	case key.Matches(km, keys.Top):
		d.viewport.GotoTop()
		return d, nil, false
	case key.Matches(km, keys.Bottom):
		d.viewport.GotoBottom()
		return d, nil, false
	}
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(km)
	return d, cmd, false
}

func (d detailModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	v := d.view
	inner := overlayWidth(width) - 4

	initial := lipgloss.NewStyle().
		Background(lipgloss.Color(theme.Accent)).
		Foreground(lipgloss.Color(theme.Background)).
		Bold(true).
		Padding(0, 1).
		Render(v.Initial)
	kindBadge := styles.BadgeStyle(ternary(v.IsHeadquarters, badgeMatriz, badgeFilial)).
		Render(strings.ToUpper(v.Kind))
	nameWidth := maxInt(inner-lipgloss.Width(initial)-lipgloss.Width(kindBadge)-2, 4)
	name := styles.Text.Bold(true).Render(truncate(v.Name, nameWidth))
	gap := maxInt(inner-lipgloss.Width(initial)-lipgloss.Width(name)-lipgloss.Width(kindBadge)-1, 1)

	var b strings.Builder
	b.WriteString(initial + " " + name + strings.Repeat(" ", gap) + kindBadge)
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%s · ID do sistema #%d", v.Sector, v.ID)))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", inner)))
	b.WriteString("\n")
	b.WriteString(d.viewport.View())
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", inner)))
	b.WriteString("\n")
	b.WriteString(renderBindings(styles, DefaultKeyMap().detailHelp()))

	box := styles.Overlay.Width(overlayWidth(width)).Render(b.String())
	return placeOverlay(theme, width, height, box)
}

// detailBody renders the scrollable part of the detail overlay.
func detailBody(v registry.DetailView, theme Theme, width int) string {
	styles := theme.Styles()
	wrap := func(s string) string { return wordwrap.String(s, maxInt(width, 10)) }

	var b strings.Builder
	section := func(title string) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.AccentText.Bold(true).Render(title))
		b.WriteString("\n")
	}
	field := func(label, value string) {
		b.WriteString(styles.FaintText.Render(padRight(label, 20)))
		b.WriteString(styles.Text.Render(truncate(value, maxInt(width-20, 8))))
		b.WriteString("\n")
	}

	section("Resumo da unidade")
	b.WriteString(styles.Text.Render(wrap(v.Summary)))
	b.WriteString("\n")

	section("Endereço operacional")
	b.WriteString(styles.Text.Render(wrap(v.FullAddress)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(wrap(v.RegionLine)))
	b.WriteString("\n")
	field("CEP", v.PostalCode)
	field("Cidade / UF", v.City+" / "+v.StateCode)

	section("Dados fiscais")
	field("CNPJ", v.TaxID)
	b.WriteString(styles.FaintText.Render(padRight("Situação", 20)))
	b.WriteString(styles.SuccessText.Render(v.Status))
	b.WriteString("\n")

	section("Sobre")
	b.WriteString(styles.Text.Render(wrap(v.Description)))
	b.WriteString("\n")
	field("Faturamento anual", v.Revenue)
	field("Funcionários", v.Employees)
	field("Site", v.Website)
	if v.LogoURL != "" {
		field("Logo", v.LogoURL)
	}

	if len(v.Attributes) > 0 {
		section("Atributos adicionais")
		for _, attr := range v.Attributes {
			field(attr.Label, attr.Value)
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Última sincronização: " + v.CreatedAt))
	return b.String()
}
