package registry

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholders rendered in place of absent values.
const (
	PlaceholderNotProvided = "Não informado"
	PlaceholderTaxID       = "ISENTO / NÃO INF."
	PlaceholderStreet      = "Logradouro não informado"
	PlaceholderShort       = "---"
	PlaceholderStateCode   = "--"

	KindHeadquarters = "Matriz"
	KindBranch       = "Filial"

	StatusActive = "Ativo no ERP"
)

// Field is one label/value pair of the detail view.
type Field struct {
	Label string
	Value string
}

// DetailView is the read-only projection of a record shown in the detail overlay.
// Every string is display-ready: absent values already carry their placeholder.
type DetailView struct {
	ID             int64
	Initial        string
	Name           string
	Sector         string
	Kind           string
	IsHeadquarters bool
	LogoURL        string

	FullAddress string
	RegionLine  string
	PostalCode  string
	City        string
	StateCode   string

	TaxID  string
	Status string

	Summary     string
	Description string
	Revenue     string
	Employees   string
	Website     string
	CreatedAt   string

	Attributes []Field
	ShareText  string
}

// Renderer projects records into detail views using locale-aware number
// formatting.
type Renderer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewRenderer returns a Renderer formatting numbers for tag.
func NewRenderer(tag language.Tag) Renderer {
	return Renderer{tag: tag, printer: message.NewPrinter(tag)}
}

// DefaultRenderer formats numbers for Brazilian Portuguese.
func DefaultRenderer() Renderer {
	return NewRenderer(language.BrazilianPortuguese)
}

// Render builds the detail view of c. It never fails; missing data turns into
// placeholders.
func (r Renderer) Render(c Company) DetailView {
	if r.printer == nil {
		r = DefaultRenderer()
	}
	kind := c.Extra.value(func(e Extra) string { return e.Kind })
	if kind == "" {
		kind = KindBranch
	}
	region := c.Extra.value(func(e Extra) string { return e.Region })

	view := DetailView{
		ID:             c.ID,
		Initial:        c.Initial(),
		Name:           orDefault(c.Name, PlaceholderNotProvided),
		Sector:         orDefault(c.Sector, PlaceholderNotProvided),
		Kind:           kind,
		IsHeadquarters: c.IsHeadquarters(),
		LogoURL:        strings.TrimSpace(c.LogoURL),

		FullAddress: orDefault(c.Extra.value(func(e Extra) string { return e.FullAddress }), PlaceholderStreet),
		RegionLine:  regionLine(region, c.Location),
		PostalCode:  orDefault(c.Extra.value(func(e Extra) string { return e.PostalCode }), PlaceholderShort),
		City:        orDefault(c.Extra.value(func(e Extra) string { return e.Municipality }), PlaceholderShort),
		StateCode:   orDefault(c.Extra.value(func(e Extra) string { return e.StateCode }), PlaceholderStateCode),

		TaxID:  orDefault(c.TaxID, PlaceholderTaxID),
		Status: StatusActive,

		Summary:     r.summary(c, kind, region),
		Description: orDefault(c.Description, PlaceholderNotProvided),
		Revenue:     r.revenue(c.AnnualRevenue),
		Employees:   r.employees(c.EmployeeCount),
		Website:     orDefault(c.Website, PlaceholderNotProvided),
		CreatedAt:   r.createdAt(c),

		Attributes: attributeFields(c),
		ShareText:  ShareText(c),
	}
	return view
}

// Render projects c with the default renderer.
func Render(c Company) DetailView {
	return DefaultRenderer().Render(c)
}

// ShareText is the plain-text summary handed to the share surface.
func ShareText(c Company) string {
	lines := []string{
		"*" + orDefault(c.Name, PlaceholderNotProvided) + "*",
		"CNPJ: " + orDefault(c.TaxID, PlaceholderNotProvided),
		"Setor: " + orDefault(c.Sector, PlaceholderNotProvided),
		"Localização: " + orDefault(c.Location, PlaceholderNotProvided),
	}
	if desc := strings.TrimSpace(c.Description); desc != "" {
		lines = append(lines, "", desc)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// FormatEmployees renders an employee count with locale grouping.
func (r Renderer) FormatEmployees(n int64) string {
	return r.printer.Sprintf("%d", n)
}

func (r Renderer) summary(c Company, kind, region string) string {
	lower := cases.Lower(r.tag)
	place := region
	if place == "" {
		place = c.Extra.value(func(e Extra) string { return e.Municipality })
	}
	if place == "" {
		place = strings.TrimSpace(c.Location)
	}
	sector := strings.TrimSpace(c.Sector)
	if sector == "" {
		sector = PlaceholderNotProvided
	}
	return fmt.Sprintf("Esta unidade é uma %s estratégica do grupo, atuando no setor de %s na região de %s.",
		lower.String(kind),
		lower.String(sector),
		orDefault(place, lower.String(PlaceholderNotProvided)))
}

func (r Renderer) revenue(v *float64) string {
	if v == nil {
		return PlaceholderNotProvided
	}
	return r.printer.Sprintf("R$ %.2f", *v)
}

func (r Renderer) employees(v *int64) string {
	if v == nil {
		return PlaceholderNotProvided
	}
	return r.FormatEmployees(*v)
}

func (r Renderer) createdAt(c Company) string {
	t := c.ParsedCreatedAt()
	if t.IsZero() {
		return orDefault(c.CreatedAt, PlaceholderNotProvided)
	}
	return t.Format("02/01/2006")
}

func regionLine(region, location string) string {
	location = strings.TrimSpace(location)
	switch {
	case region != "" && location != "":
		return region + " — " + location
	case region != "":
		return region
	case location != "":
		return location
	default:
		return PlaceholderNotProvided
	}
}

func attributeFields(c Company) []Field {
	keys := c.AttributeKeys()
	if len(keys) == 0 {
		return nil
	}
	fields := make([]Field, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, Field{Label: key, Value: formatAttribute(c.Attributes[key])})
	}
	return fields
}

func formatAttribute(v any) string {
	switch value := v.(type) {
	case nil:
		return PlaceholderNotProvided
	case string:
		return orDefault(value, PlaceholderNotProvided)
	case json.Number:
		return value.String()
	case bool, float64, int, int64:
		return fmt.Sprint(value)
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(encoded)
	}
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
