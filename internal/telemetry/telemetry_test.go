package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesToLogFile(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	path := filepath.Join(t.TempDir(), "logs", "registro.log")

	tel, err := Setup(context.Background(), Options{LogFile: path, Debug: true, SessionID: "abc"})
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	tel.Logger.Debug("load started", "seq", 1)
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	line := string(data)
	for _, want := range []string{"load started", "seq=1", "session=abc", "level=DEBUG"} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %q", line, want)
		}
	}
}

func TestSetup_InfoLevelDropsDebug(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	path := filepath.Join(t.TempDir(), "registro.log")

	tel, err := Setup(context.Background(), Options{LogFile: path})
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	tel.Logger.Debug("hidden")
	tel.Logger.Info("shown")
	_ = tel.Shutdown(context.Background())

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Fatalf("log = %q, want only info line", data)
	}
}

func TestSetup_NoFileDiscards(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	tel, err := Setup(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	tel.Logger.Info("nowhere")
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}
}

func TestNewNoop(t *testing.T) {
	tel := NewNoop()
	if tel.Logger == nil {
		t.Fatalf("Logger is nil")
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}
}

func TestLeveled_GatesExportHandler(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{"info level drops debug", false, false},
		{"debug level keeps debug", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			logger := slog.New(leveled(inner, minLevel(tt.debug))).With("session", "abc")

			logger.Debug("fetch detail")
			logger.Info("load complete")

			out := buf.String()
			if got := strings.Contains(out, "fetch detail"); got != tt.wantDebug {
				t.Fatalf("debug record present = %v, want %v; log = %q", got, tt.wantDebug, out)
			}
			if !strings.Contains(out, "load complete") || !strings.Contains(out, "session=abc") {
				t.Fatalf("info record missing or lost attrs: %q", out)
			}
		})
	}
}
