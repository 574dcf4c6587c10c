package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vfpar/registro/internal/registry"
)

// DefaultTable is the table read when none is configured.
const DefaultTable = "empresas"

// Postgres reads the collection straight from a table. Each row is turned into
// a JSON object by the server so extra columns land in Company.Attributes.
type Postgres struct {
	pool  *pgxpool.Pool
	query string
}

// NewPostgres prepares a lazily connecting pool for dsn. table may be schema
// qualified ("public.empresas").
func NewPostgres(ctx context.Context, dsn, table string) (*Postgres, error) {
	query, err := selectAll(table)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres source: database_url is empty")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres source: parse config: %w", err)
	}
	cfg.MaxConns = 2
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres source: new pool: %w", err)
	}
	return &Postgres{pool: pool, query: query}, nil
}

// Fetch runs one query for the whole table, ordered by id.
func (p *Postgres) Fetch(ctx context.Context) ([]registry.Company, error) {
	rows, err := p.pool.Query(ctx, p.query)
	if err != nil {
		return nil, fmt.Errorf("query companies: %w", err)
	}
	defer rows.Close()

	var companies []registry.Company
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		var c registry.Company
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read companies: %w", err)
	}
	return companies, nil
}

// Close releases the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func selectAll(table string) (string, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		table = DefaultTable
	}
	parts := strings.Split(table, ".")
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return "", fmt.Errorf("postgres source: invalid table name %q", table)
		}
	}
	return fmt.Sprintf("SELECT to_jsonb(t) FROM %s t ORDER BY t.id", pgx.Identifier(parts).Sanitize()), nil
}
