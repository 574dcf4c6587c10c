package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectAll_QuotesIdentifiers(t *testing.T) {
	tests := []struct {
		table string
		want  string
	}{
		{"", `SELECT to_jsonb(t) FROM "empresas" t ORDER BY t.id`},
		{"public.empresas", `SELECT to_jsonb(t) FROM "public"."empresas" t ORDER BY t.id`},
		{`x"; DROP TABLE y; --`, `SELECT to_jsonb(t) FROM "x""; DROP TABLE y; --" t ORDER BY t.id`},
	}
	for _, tt := range tests {
		got, err := selectAll(tt.table)
		require.NoError(t, err, tt.table)
		assert.Equal(t, tt.want, got)
	}

	_, err := selectAll("public.")
	assert.Error(t, err)
}

func TestNewPostgres_RequiresDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), "", "empresas")
	assert.Error(t, err)
}
