package registry

import (
	"reflect"
	"strings"
	"testing"
)

func sampleCollection() []Company {
	return []Company{
		{ID: 1, Name: "Acme Ltda", Sector: "Varejo", Location: "São Paulo"},
		{ID: 2, Name: "Beta SA", Sector: "Tecnologia", Location: "Rio de Janeiro"},
		{ID: 3, Name: "Gama Comércio", Sector: "Varejo", Location: "Curitiba"},
		{ID: 4, Name: "Delta", Sector: "", Location: ""},
		{ID: 5, Name: "", Sector: "Energia", Location: "Recife"},
	}
}

func ids(companies []Company) []int64 {
	out := make([]int64, 0, len(companies))
	for _, c := range companies {
		out = append(out, c.ID)
	}
	return out
}

func TestFilter_EmptyTermIsIdentity(t *testing.T) {
	all := sampleCollection()
	got := Filter(all, "")
	if !reflect.DeepEqual(got, all) {
		t.Fatalf("Filter(all, \"\") = %v, want %v", ids(got), ids(all))
	}
}

func TestFilter_Scenario(t *testing.T) {
	all := []Company{
		{ID: 1, Name: "Acme Ltda", Sector: "Varejo", Location: "São Paulo"},
		{ID: 2, Name: "Beta SA", Sector: "Tecnologia", Location: "Rio de Janeiro"},
	}
	got := Filter(all, "tecno")
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("Filter(tecno) = %v, want [2]", ids(got))
	}
}

func TestFilter_CaseInsensitive(t *testing.T) {
	all := sampleCollection()
	lower := Filter(all, "acme")
	upper := Filter(all, "ACME")
	if !reflect.DeepEqual(lower, upper) {
		t.Fatalf("acme = %v, ACME = %v, want equal", ids(lower), ids(upper))
	}
	if len(lower) != 1 || lower[0].ID != 1 {
		t.Fatalf("Filter(acme) = %v, want [1]", ids(lower))
	}

	accented := Filter(all, "SÃO")
	if len(accented) != 1 || accented[0].ID != 1 {
		t.Fatalf("Filter(SÃO) = %v, want [1]", ids(accented))
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	got := Filter(sampleCollection(), "varejo")
	if want := []int64{1, 3}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("Filter(varejo) = %v, want %v", ids(got), want)
	}
}

func TestFilter_AbsentFieldsNeverMatch(t *testing.T) {
	all := sampleCollection()
	got := Filter(all, "delta")
	if want := []int64{4}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("Filter(delta) = %v, want %v", ids(got), want)
	}
	got = Filter(all, "recife")
	if want := []int64{5}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("Filter(recife) = %v, want %v", ids(got), want)
	}
}

func TestFilter_SoundAndComplete(t *testing.T) {
	all := sampleCollection()
	for _, term := range []string{"a", "o", "ltda", "rio", "e", "zzz", "Comércio", " "} {
		got := Filter(all, term)
		included := make(map[int64]bool, len(got))
		for _, c := range got {
			included[c.ID] = true
		}
		needle := strings.ToLower(term)
		for _, c := range all {
			want := strings.Contains(strings.ToLower(c.Name), needle) ||
				strings.Contains(strings.ToLower(c.Sector), needle) ||
				strings.Contains(strings.ToLower(c.Location), needle)
			if included[c.ID] != want {
				t.Fatalf("term %q: record %d included=%v, want %v", term, c.ID, included[c.ID], want)
			}
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	all := sampleCollection()
	before := ids(all)
	_ = Filter(all, "varejo")
	if !reflect.DeepEqual(ids(all), before) {
		t.Fatalf("collection changed to %v, want %v", ids(all), before)
	}
}

func TestDistinctSectors(t *testing.T) {
	tests := []struct {
		name string
		in   []Company
		want int
	}{
		{"empty", nil, 0},
		{"sample", sampleCollection(), 4},
		{"case sensitive", []Company{{Sector: "Varejo"}, {Sector: "varejo"}}, 2},
		{"duplicates", []Company{{Sector: "A"}, {Sector: "A"}, {Sector: "A"}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistinctSectors(tt.in); got != tt.want {
				t.Fatalf("DistinctSectors = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDistinctSectors_IgnoresSearch(t *testing.T) {
	all := sampleCollection()
	_ = Filter(all, "tecno")
	if got := DistinctSectors(all); got != 4 {
		t.Fatalf("DistinctSectors = %d, want 4", got)
	}
}
