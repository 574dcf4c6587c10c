package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/vfpar/registro/internal/insight"
)

type insightPhase int

const (
	insightLoading insightPhase = iota
	insightReady
	insightFailed
)

// insightModal shows the state of one insight request. A failure stays inside
// the overlay and never touches the browsing state.
type insightModal struct {
	phase    insightPhase
	count    int
	result   insight.Insight
	err      error
	spinner  spinner.Model
	viewport viewport.Model
}

func newInsightModal(count int) insightModal {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return insightModal{phase: insightLoading, count: count, spinner: s, viewport: viewport.New(0, 0)}
}

func (im insightModal) loading() bool {
	return im.phase == insightLoading
}

// resolve records the outcome of the request.
func (im insightModal) resolve(out insight.Insight, err error) insightModal {
	if err != nil {
		im.phase = insightFailed
		im.err = err
		return im
	}
	im.phase = insightReady
	im.result = out
	return im
}

func (im insightModal) Resize(theme Theme, width, height int) Modal {
	inner := overlayWidth(width) - 4
	im.viewport.Width = inner
	im.viewport.Height = maxInt(height-10, 3)
	if im.phase == insightReady {
		im.viewport.SetContent(insightBody(im.result, theme, inner))
	}
	return im
}

func (im insightModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !im.loading() {
			return im, nil, false
		}
		var cmd tea.Cmd
		im.spinner, cmd = im.spinner.Update(msg)
		return im, cmd, false
	case tea.KeyMsg:
		if key.Matches(msg, keys.Close) || key.Matches(msg, keys.Quit) {
			return im, nil, true
		}
		if im.phase == insightReady {
			var cmd tea.Cmd
			im.viewport, cmd = im.viewport.Update(msg)
			return im, cmd, false
		}
	}
	return im, nil, false
}

func (im insightModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	inner := overlayWidth(width) - 4

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Insights de IA"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d empresas analisadas", im.count)))
	b.WriteString("\n\n")

	switch im.phase {
	case insightLoading:
		b.WriteString(im.spinner.View() + " " + styles.Text.Render("Analisando empresas..."))
	case insightFailed:
		b.WriteString(styles.DangerText.Render("Não foi possível gerar insights."))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(wordwrap.String(insightErrorText(im.err), inner)))
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render("a tentar novamente"))
	case insightReady:
		b.WriteString(im.viewport.View())
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("esc fechar"))

	box := styles.Overlay.Width(overlayWidth(width)).Render(b.String())
	return placeOverlay(theme, width, height, box)
}

func insightBody(out insight.Insight, theme Theme, width int) string {
	styles := theme.Styles()
	wrap := func(s string) string { return wordwrap.String(s, maxInt(width, 10)) }

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Resumo"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render(wrap(out.Summary)))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Bold(true).Render("Recomendações"))
	b.WriteString("\n")
	for _, rec := range out.Recommendations {
		b.WriteString(styles.Text.Render(wrap("• " + rec)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.AccentText.Bold(true).Render("Análise de mercado"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render(wrap(out.MarketAnalysis)))
	return b.String()
}

func insightErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, insight.ErrNoCompanies):
		return "Nenhuma empresa para analisar."
	case errors.Is(err, insight.ErrMalformed):
		return "A resposta do modelo veio em um formato inesperado."
	default:
		return err.Error()
	}
}
