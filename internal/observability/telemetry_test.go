package observability

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/fantasy-statline/internal/config"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
)

func TestStartTelemetry_Disabled(t *testing.T) {
	cfg := config.Config{
		ServiceName:    "fantasy-statline-worker",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	tel, err := StartTelemetry(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	if tel.TracingEnabled() || tel.ProfilingEnabled() {
		t.Fatalf("expected both exporters off, tracing=%v profiling=%v", tel.TracingEnabled(), tel.ProfilingEnabled())
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStartTelemetry_TracingWithoutDSNStaysOff(t *testing.T) {
	cfg := config.Config{UptraceEnabled: true, UptraceDSN: "  "}

	tel, err := StartTelemetry(cfg, nil)
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	if tel.TracingEnabled() {
		t.Fatalf("expected tracing off without a DSN")
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestTelemetry_NilShutdown(t *testing.T) {
	var tel *Telemetry
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil shutdown: %v", err)
	}
}

func TestProfileTags(t *testing.T) {
	got := profileTags(config.Config{
		AppEnv:       config.EnvProd,
		ServiceName:  "fantasy-statline-worker",
		IngestSports: []sport.Sport{sport.NFL, sport.NHL},
	})
	want := map[string]string{
		"env":     config.EnvProd,
		"service": "fantasy-statline-worker",
		"sports":  "nfl,nhl",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}
