package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vfpar/registro/internal/insight"
	"github.com/vfpar/registro/internal/registry"
)

// ErrNotFound is returned by Show when no record has the requested id.
var ErrNotFound = errors.New("company not found")

// ErrInsightsDisabled is returned by Insights when no API key is configured.
var ErrInsightsDisabled = errors.New("insights disabled: set GEMINI_API_KEY")

// ListOptions configure the list command.
type ListOptions struct {
	Term string
	JSON bool
}

// List loads the collection once and writes the records matching the search
// term to w, as a table or as JSON.
func List(ctx context.Context, opts Options, w io.Writer, lo ListOptions) (err error) {
	s, err := openSession(ctx, opts, opts.Debug)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.close(ctx)) }()

	if err := s.loader.Load(ctx); err != nil {
		return err
	}
	s.store.SetSearch(lo.Term)
	snap := s.store.Snapshot()
	visible := snap.Visible()

	if lo.JSON {
		return writeJSON(w, visible)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NOME", "SETOR", "LOCALIZAÇÃO", "CNPJ")
	for _, c := range visible {
		t.Row(
			fmt.Sprintf("%d", c.ID),
			orDash(c.Name),
			orDash(c.Sector),
			orDash(c.Location),
			orDash(c.TaxID),
		)
	}
	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%d de %d empresas · %d setores\n", len(visible), len(snap.Companies), snap.SectorCount())
	return err
}

// ShowOptions configure the show command.
type ShowOptions struct {
	ID   int64
	JSON bool
}

// Show writes the detail view of one record.
func Show(ctx context.Context, opts Options, w io.Writer, so ShowOptions) (err error) {
	s, err := openSession(ctx, opts, opts.Debug)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.close(ctx)) }()

	if err := s.loader.Load(ctx); err != nil {
		return err
	}

	var found *registry.Company
	for _, c := range s.store.Snapshot().Companies {
		if c.ID == so.ID {
			found = &c
			break
		}
	}
	if found == nil || !s.store.Select(*found) {
		return fmt.Errorf("%w: id %d", ErrNotFound, so.ID)
	}
	selected, _ := s.store.Selected()

	if so.JSON {
		return writeJSON(w, selected)
	}
	return writeDetail(w, registry.NewRenderer(s.prefs.Tag()).Render(selected))
}

// InsightOptions configure the insights command.
type InsightOptions struct {
	Term string
	JSON bool
}

// Insights asks the model about the whole collection, or only the records
// matching Term when one is given.
func Insights(ctx context.Context, opts Options, w io.Writer, ins InsightOptions) (err error) {
	s, err := openSession(ctx, opts, opts.Debug)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.close(ctx)) }()

	if !s.cfg.Insight.Enabled() {
		return ErrInsightsDisabled
	}
	gen, closeGen := s.generator(ctx)
	defer closeGen()
	if gen == nil {
		return fmt.Errorf("insights unavailable for model %q", s.cfg.Insight.Model)
	}
	return runInsights(ctx, s, gen, w, ins)
}

func runInsights(ctx context.Context, s *session, gen insight.Generator, w io.Writer, opts InsightOptions) error {
	if err := s.loader.Load(ctx); err != nil {
		return err
	}
	companies := s.store.Snapshot().Companies
	if strings.TrimSpace(opts.Term) != "" {
		s.store.SetSearch(opts.Term)
		companies = s.store.Snapshot().Visible()
	}

	out, err := gen.Generate(ctx, companies)
	if err != nil {
		return fmt.Errorf("generate insights: %w", err)
	}
	if opts.JSON {
		return writeJSON(w, out)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Resumo\n%s\n\nRecomendações\n", out.Summary)
	for _, rec := range out.Recommendations {
		fmt.Fprintf(&b, "  • %s\n", rec)
	}
	fmt.Fprintf(&b, "\nAnálise de mercado\n%s\n", out.MarketAnalysis)
	_, err = io.WriteString(w, b.String())
	return err
}

func writeDetail(w io.Writer, v registry.DetailView) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", v.Name, strings.ToUpper(v.Kind))
	fmt.Fprintf(&b, "%s · ID do sistema #%d\n\n", v.Sector, v.ID)
	fmt.Fprintf(&b, "%s\n\n", v.Summary)

	rows := []registry.Field{
		{Label: "Endereço", Value: v.FullAddress},
		{Label: "Região", Value: v.RegionLine},
		{Label: "CEP", Value: v.PostalCode},
		{Label: "Cidade / UF", Value: v.City + " / " + v.StateCode},
		{Label: "CNPJ", Value: v.TaxID},
		{Label: "Situação", Value: v.Status},
		{Label: "Faturamento anual", Value: v.Revenue},
		{Label: "Funcionários", Value: v.Employees},
		{Label: "Site", Value: v.Website},
		{Label: "Descrição", Value: v.Description},
	}
	rows = append(rows, v.Attributes...)
	rows = append(rows, registry.Field{Label: "Última sincronização", Value: v.CreatedAt})
	for _, f := range rows {
		fmt.Fprintf(&b, "%-22s %s\n", f.Label, f.Value)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return registry.PlaceholderShort
	}
	return strings.TrimSpace(s)
}
