package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vfpar/registro/internal/insight"
	"github.com/vfpar/registro/internal/registry"
	"github.com/vfpar/registro/internal/share"
	"github.com/vfpar/registro/internal/state"
)

// loadResultMsg carries a finished fetch back to the event loop.
type loadResultMsg struct {
	result state.Result
}

// shareResultMsg reports which share surface accepted the text.
type shareResultMsg struct {
	name    string
	outcome share.Outcome
	err     error
}

// insightResultMsg carries an insight answer tagged with the request that
// produced it.
type insightResultMsg struct {
	seq     int
	insight insight.Insight
	err     error
}

// openResultMsg reports the outcome of opening a website.
type openResultMsg struct {
	url string
	err error
}

// toastHideMsg hides the toast with the given id.
type toastHideMsg struct {
	id int
}

func fetchCmd(ctx context.Context, loader *state.Loader, req state.Request) tea.Cmd {
	return func() tea.Msg {
		return loadResultMsg{result: loader.Fetch(ctx, req)}
	}
}

func shareCmd(ctx context.Context, sharer Sharer, c registry.Company) tea.Cmd {
	title := strings.TrimSpace(c.Name)
	text := registry.ShareText(c)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ShareTimeout)
		defer cancel()
		outcome, err := sharer.Share(ctx, title, text)
		return shareResultMsg{name: title, outcome: outcome, err: err}
	}
}

func insightCmd(ctx context.Context, gen insight.Generator, seq int, companies []registry.Company) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, InsightTimeout)
		defer cancel()
		out, err := gen.Generate(ctx, companies)
		return insightResultMsg{seq: seq, insight: out, err: err}
	}
}

func openCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return openResultMsg{url: url, err: open(url)}
	}
}

// websiteURL returns the address to open for a record's site, assuming https
// when no scheme is given. It returns "" when the record has no site.
func websiteURL(site string) string {
	site = strings.TrimSpace(site)
	if site == "" {
		return ""
	}
	if strings.Contains(site, "://") {
		return site
	}
	return "https://" + strings.TrimPrefix(site, "//")
}
