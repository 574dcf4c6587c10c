package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vfpar/registro/internal/registry"
)

// Kinds of data source understood by Open.
const (
	KindHTTP     = "http"
	KindPostgres = "postgres"
	KindFile     = "file"
)

// Source fetches the full, unfiltered company collection. Implementations
// never page or filter server-side.
type Source interface {
	Fetch(ctx context.Context) ([]registry.Company, error)
	Close() error
}

// Ensure implementations satisfy Source at compile time.
var (
	_ Source = (*HTTP)(nil)
	_ Source = (*Postgres)(nil)
	_ Source = (*File)(nil)
)

// Options selects and configures a Source.
type Options struct {
	Kind        string
	URL         string
	DatabaseURL string
	Table       string
	Path        string
	Timeout     time.Duration
	UserAgent   string
}

// Open builds the Source described by opts. Opening never touches the network;
// connectivity problems surface on the first Fetch.
func Open(ctx context.Context, opts Options) (Source, error) {
	switch kind := strings.ToLower(strings.TrimSpace(opts.Kind)); kind {
	case "", KindHTTP:
		return NewHTTP(opts.URL, HTTPOptions{Timeout: opts.Timeout, UserAgent: opts.UserAgent})
	case KindPostgres:
		return NewPostgres(ctx, opts.DatabaseURL, opts.Table)
	case KindFile:
		return NewFile(opts.Path)
	default:
		return nil, fmt.Errorf("unknown source kind %q", opts.Kind)
	}
}
