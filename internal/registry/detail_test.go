package registry

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/exp/golden"
	"golang.org/x/text/language"
)

func TestRender_BareRecordUsesPlaceholders(t *testing.T) {
	view := Render(Company{ID: 42})

	checks := []struct {
		field string
		got   string
		want  string
	}{
		{"Name", view.Name, PlaceholderNotProvided},
		{"Sector", view.Sector, PlaceholderNotProvided},
		{"Kind", view.Kind, KindBranch},
		{"FullAddress", view.FullAddress, PlaceholderStreet},
		{"RegionLine", view.RegionLine, PlaceholderNotProvided},
		{"PostalCode", view.PostalCode, PlaceholderShort},
		{"City", view.City, PlaceholderShort},
		{"StateCode", view.StateCode, PlaceholderStateCode},
		{"TaxID", view.TaxID, PlaceholderTaxID},
		{"Description", view.Description, PlaceholderNotProvided},
		{"Revenue", view.Revenue, PlaceholderNotProvided},
		{"Employees", view.Employees, PlaceholderNotProvided},
		{"Website", view.Website, PlaceholderNotProvided},
		{"CreatedAt", view.CreatedAt, PlaceholderNotProvided},
		{"Initial", view.Initial, "?"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.field, c.got, c.want)
		}
	}
	if view.ID != 42 {
		t.Fatalf("ID = %d, want 42", view.ID)
	}
	if view.IsHeadquarters {
		t.Fatalf("IsHeadquarters = true, want false")
	}
	if strings.TrimSpace(view.Summary) == "" || strings.Contains(view.Summary, "  ") {
		t.Fatalf("Summary = %q, want a complete sentence", view.Summary)
	}
}

func TestRender_PopulatedRecord(t *testing.T) {
	revenue := 1500000.0
	employees := int64(1500)
	c := Company{
		ID:            1,
		Name:          "Acme Ltda",
		Sector:        "Varejo",
		Location:      "São Paulo",
		TaxID:         "12.345.678/0001-90",
		Website:       "acme.com.br",
		AnnualRevenue: &revenue,
		EmployeeCount: &employees,
		CreatedAt:     "2024-03-01T10:00:00Z",
		Extra: &Extra{
			Kind:        "Matriz",
			Region:      "Sudeste",
			FullAddress: "Av. Paulista, 1000",
			PostalCode:  "01310-100",
			StateCode:   "SP",
		},
		Attributes: map[string]any{"ramo": "moda"},
	}
	view := NewRenderer(language.English).Render(c)

	if !view.IsHeadquarters || view.Kind != "Matriz" {
		t.Fatalf("kind = %q hq=%v, want Matriz hq=true", view.Kind, view.IsHeadquarters)
	}
	if view.RegionLine != "Sudeste — São Paulo" {
		t.Fatalf("RegionLine = %q", view.RegionLine)
	}
	if view.City != PlaceholderShort {
		t.Fatalf("City = %q, want placeholder when municipio missing", view.City)
	}
	if view.Employees != "1,500" {
		t.Fatalf("Employees = %q, want 1,500", view.Employees)
	}
	if !strings.HasPrefix(view.Revenue, "R$ ") {
		t.Fatalf("Revenue = %q, want R$ prefix", view.Revenue)
	}
	if view.CreatedAt != "01/03/2024" {
		t.Fatalf("CreatedAt = %q, want 01/03/2024", view.CreatedAt)
	}
	if want := "Esta unidade é uma matriz estratégica do grupo, atuando no setor de varejo na região de Sudeste."; view.Summary != want {
		t.Fatalf("Summary = %q, want %q", view.Summary, want)
	}
	if len(view.Attributes) != 1 || view.Attributes[0] != (Field{Label: "ramo", Value: "moda"}) {
		t.Fatalf("Attributes = %#v", view.Attributes)
	}
}

func TestRender_SummaryFallsBackToMunicipality(t *testing.T) {
	c := Company{Sector: "Energia", Extra: &Extra{Municipality: "Recife"}}
	view := Render(c)
	if !strings.HasSuffix(view.Summary, "na região de Recife.") {
		t.Fatalf("Summary = %q, want municipality fallback", view.Summary)
	}
}

func TestShareText(t *testing.T) {
	c := Company{
		ID:          1,
		Name:        "Acme Ltda",
		Sector:      "Varejo",
		Location:    "São Paulo",
		TaxID:       "12.345.678/0001-90",
		Description: "Rede de lojas de departamento.",
	}
	golden.RequireEqual(t, []byte(ShareText(c)))
}

func TestShareText_NoDescriptionHasNoTrailingWhitespace(t *testing.T) {
	got := ShareText(Company{Name: "Beta SA", Sector: "Tecnologia", Location: "Rio de Janeiro"})
	want := "*Beta SA*\nCNPJ: Não informado\nSetor: Tecnologia\nLocalização: Rio de Janeiro"
	if got != want {
		t.Fatalf("ShareText = %q, want %q", got, want)
	}
	if got != strings.TrimSpace(got) {
		t.Fatalf("ShareText has surrounding whitespace: %q", got)
	}
}

func TestShareText_IsDeterministic(t *testing.T) {
	c := Company{Name: "Gama", Sector: "Varejo", Location: "Curitiba", Description: "  Loja.  "}
	if ShareText(c) != ShareText(c) {
		t.Fatalf("ShareText not deterministic")
	}
	if !strings.HasSuffix(ShareText(c), "\n\nLoja.") {
		t.Fatalf("ShareText = %q, want trimmed description after a blank line", ShareText(c))
	}
}
