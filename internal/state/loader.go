package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vfpar/registro/internal/registry"
)

// FailurePrefix starts every load failure message shown to the user.
const FailurePrefix = "Não foi possível conectar ao banco de dados das empresas."

// ErrSuperseded is returned by Load when a newer request started before this
// one finished. The store was not modified.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Source fetches the full company collection.
type Source interface {
	Fetch(ctx context.Context) ([]registry.Company, error)
}

// Request identifies one begun load.
type Request struct {
	Seq     uint64
	Started time.Time
}

// Result is the outcome of fetching a Request. It carries no state until
// passed to Apply.
type Result struct {
	Request
	Companies []registry.Company
	Err       error
	Elapsed   time.Duration
}

// Loader is the only writer of the store's collection and load status.
//
// Loading is split in three steps so the fetch can run off the UI loop:
// Begin and Apply mutate the store, Fetch only talks to the source.
type Loader struct {
	store  *Store
	source Source
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewLoader returns a Loader writing to store. A nil logger discards output.
func NewLoader(store *Store, source Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		store:  store,
		source: source,
		logger: logger,
		tracer: otel.Tracer("github.com/vfpar/registro/internal/state"),
		now:    time.Now,
	}
}

// Begin marks the store as loading and returns the request to fetch.
func (l *Loader) Begin() Request {
	seq := l.store.beginLoad()
	l.logger.Debug("load started", "seq", seq)
	return Request{Seq: seq, Started: l.now()}
}

// Fetch calls the source for req. It is safe to run concurrently with anything
// else; it never touches the store.
func (l *Loader) Fetch(ctx context.Context, req Request) Result {
	ctx, span := l.tracer.Start(ctx, "registro.load",
		trace.WithAttributes(attribute.Int64("registro.load.seq", int64(req.Seq))))
	defer span.End()

	companies, err := l.source.Fetch(ctx)
	res := Result{Request: req, Companies: companies, Err: err, Elapsed: l.now().Sub(req.Started)}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("registro.load.count", len(companies)))
	}
	return res
}

// Apply commits res to the store. It returns false when res belongs to a
// request that has been superseded by a later Begin; such results are dropped.
func (l *Loader) Apply(res Result) bool {
	if res.Err != nil {
		msg := FailureMessage(res.Err)
		if !l.store.failLoad(res.Seq, msg) {
			l.logger.Info("dropping stale load failure", "seq", res.Seq, "error", res.Err)
			return false
		}
		l.logger.Warn("load failed", "seq", res.Seq, "elapsed", res.Elapsed, "error", res.Err)
		return true
	}
	if !l.store.commitLoad(res.Seq, res.Companies, l.now()) {
		l.logger.Info("dropping stale load result", "seq", res.Seq, "count", len(res.Companies))
		return false
	}
	l.logger.Info("load complete", "seq", res.Seq, "count", len(res.Companies), "elapsed", res.Elapsed)
	return true
}

// Load runs a full Begin, Fetch, Apply cycle and returns the fetch error, if
// any.
func (l *Loader) Load(ctx context.Context) error {
	res := l.Fetch(ctx, l.Begin())
	if !l.Apply(res) {
		return ErrSuperseded
	}
	if res.Err != nil {
		return fmt.Errorf("load companies: %w", res.Err)
	}
	return nil
}

// FailureMessage turns a fetch error into the banner text shown to the user.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	return FailurePrefix + " Detalhes: " + err.Error()
}
