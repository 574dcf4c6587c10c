package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "Acme", 10, "Acme"},
		{"trims", "  Acme  ", 10, "Acme"},
		{"no_limit", "Acme Ltda", 0, "Acme Ltda"},
		{"ellipsis", "Acme Comércio Ltda", 10, "Acme Co..."},
		{"tiny", "Acme", 2, "Ac"},
		{"wide_runes", "日本語テキスト", 7, "日本..."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.in, tc.limit); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestExcerptCollapsesWhitespace(t *testing.T) {
	if got := excerpt("Rede de\n  lojas\tde departamento", 40); got != "Rede de lojas de departamento" {
		t.Fatalf("excerpt = %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("São", 5); got != "São  " {
		t.Fatalf("padRight = %q, want %q", got, "São  ")
	}
	if got := padRight("Acme Ltda", 4); got != "Acme Ltda" {
		t.Fatalf("padRight should not cut, got %q", got)
	}
}
