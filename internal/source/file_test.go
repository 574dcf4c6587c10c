package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFile_JSON(t *testing.T) {
	path := writeFile(t, "companies.json", `[{"id":1,"nome":"Acme","extra":{"uf":"SP"}}]`)
	src, err := NewFile(path)
	require.NoError(t, err)

	companies, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme", companies[0].Name)
	require.NotNil(t, companies[0].Extra)
	assert.Equal(t, "SP", companies[0].Extra.StateCode)
}

func TestFile_YAMLKeepsUnknownKeys(t *testing.T) {
	path := writeFile(t, "companies.yaml", `
- id: 1
  nome: Acme Ltda
  setor: Varejo
  localizacao: São Paulo
  faturamento_anual: 1500000.5
  numero_funcionarios: 120
  created_at: "2024-03-01T10:00:00Z"
  extra:
    tipo: Matriz
    regiao: Sudeste
  ramo: moda
- id: 2
  nome: Beta SA
`)
	src, err := NewFile(path)
	require.NoError(t, err)

	companies, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 2)

	acme := companies[0]
	assert.Equal(t, int64(1), acme.ID)
	require.NotNil(t, acme.AnnualRevenue)
	assert.InDelta(t, 1500000.5, *acme.AnnualRevenue, 0.001)
	require.NotNil(t, acme.EmployeeCount)
	assert.Equal(t, int64(120), *acme.EmployeeCount)
	assert.True(t, acme.IsHeadquarters())
	assert.Equal(t, "moda", acme.Attributes["ramo"])
	assert.Equal(t, 2024, acme.ParsedCreatedAt().Year())
}

func TestNewFile_RejectsUnknownExtension(t *testing.T) {
	_, err := NewFile("companies.csv")
	assert.Error(t, err)
	_, err = NewFile("  ")
	assert.Error(t, err)
}

func TestFile_MissingFile(t *testing.T) {
	src, err := NewFile(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	_, err = src.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFile_CancelledContext(t *testing.T) {
	path := writeFile(t, "companies.json", `[]`)
	src, err := NewFile(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
