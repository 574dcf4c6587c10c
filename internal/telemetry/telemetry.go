// Package telemetry sets up logging and tracing for a registro process.
//
// Without OTEL_EXPORTER_OTLP_ENDPOINT the logger writes text to the configured
// log file, or nowhere; the terminal belongs to the TUI. With the endpoint set,
// logs and traces are exported over OTLP gRPC.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const serviceName = "registro"

var version = "dev"

// SetVersion records the build version reported on exported resources.
func SetVersion(v string) {
	version = v
}

// Telemetry owns the providers and the log file of one process.
type Telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	loggerProvider *sdklog.LoggerProvider
	file           io.Closer
	Logger         *slog.Logger
}

// Options configures Setup.
type Options struct {
	Debug     bool
	LogFile   string
	SessionID string
	// Stderr, when true, logs to stderr instead of a file. Used by the
	// non-interactive commands and the fixture server.
	Stderr bool
}

// Setup builds the process logger and, when an OTLP endpoint is configured,
// the exporters behind it.
func Setup(ctx context.Context, opts Options) (*Telemetry, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return newLocalTelemetry(opts)
	}

	res, err := newResource(ctx)
	if err != nil {
		return nil, err
	}

	tracerProvider, err := newTracerProvider(ctx, res)
	if err != nil {
		return nil, err
	}

	loggerProvider, err := newLoggerProvider(ctx, res)
	if err != nil {
		_ = tracerProvider.Shutdown(ctx)
		return nil, err
	}

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	global.SetLoggerProvider(loggerProvider)

	// otelslog exports every record; gate it like the local handler.
	handler := otelslog.NewHandler(serviceName,
		otelslog.WithLoggerProvider(loggerProvider),
	)
	logger := slog.New(leveled(handler, minLevel(opts.Debug)))

	return &Telemetry{
		tracerProvider: tracerProvider,
		loggerProvider: loggerProvider,
		Logger:         withSession(logger, opts.SessionID),
	}, nil
}

// Shutdown flushes exporters and closes the log file.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.loggerProvider != nil || t.tracerProvider != nil {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if t.loggerProvider != nil {
			if err := t.loggerProvider.Shutdown(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		if t.tracerProvider != nil {
			if err := t.tracerProvider.Shutdown(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if t.file != nil {
		if err := t.file.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func newResource(ctx context.Context) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
	)
}

func newTracerProvider(ctx context.Context, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(5*time.Second),
		),
	), nil
}

func newLoggerProvider(ctx context.Context, res *resource.Resource) (*sdklog.LoggerProvider, error) {
	exporter, err := otlploggrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	return sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	), nil
}

func newLocalTelemetry(opts Options) (*Telemetry, error) {
	handlerOpts := &slog.HandlerOptions{Level: minLevel(opts.Debug)}

	t := &Telemetry{}
	var out io.Writer = io.Discard
	switch {
	case opts.Stderr:
		out = os.Stderr
	case opts.LogFile != "":
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		t.file = f
	}
	t.Logger = withSession(slog.New(slog.NewTextHandler(out, handlerOpts)), opts.SessionID)
	return t, nil
}

func minLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// levelHandler drops records below level before they reach the wrapped
// handler.
type levelHandler struct {
	level slog.Leveler
	next  slog.Handler
}

func leveled(h slog.Handler, level slog.Leveler) slog.Handler {
	return levelHandler{level: level, next: h}
}

func (h levelHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.level.Level() && h.next.Enabled(ctx, l)
}

func (h levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.next.Handle(ctx, r)
}

func (h levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return levelHandler{level: h.level, next: h.next.WithAttrs(attrs)}
}

func (h levelHandler) WithGroup(name string) slog.Handler {
	return levelHandler{level: h.level, next: h.next.WithGroup(name)}
}

// NewNoop returns telemetry that discards everything.
func NewNoop() *Telemetry {
	return &Telemetry{Logger: slog.New(slog.DiscardHandler)}
}

func withSession(logger *slog.Logger, id string) *slog.Logger {
	if id == "" {
		return logger
	}
	return logger.With("session", id)
}
