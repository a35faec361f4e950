package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
)

func TestMutedEvent(t *testing.T) {
	if !mutedEvent(logging.LevelDebug, "skip invalid roster entry") {
		t.Fatalf("expected per-row debug log to be muted")
	}
	if mutedEvent(logging.LevelWarn, "skip invalid roster entry") {
		t.Fatalf("did not expect warn level to be muted")
	}
	if mutedEvent(logging.LevelDebug, "cycle finished") {
		t.Fatalf("did not expect other debug events to be muted")
	}
}

func TestLogAttributes(t *testing.T) {
	attrs := logAttributes([]any{"sport", sport.NBA, "dropped", 2, "error", errors.New("boom"), 7, "x", "cycle_id"})
	if len(attrs) != 5 {
		t.Fatalf("expected 5 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "sport" || attrs[0].Value.AsString() != "nba" {
		t.Fatalf("unexpected sport attribute: %s=%s", attrs[0].Key, attrs[0].Value.AsString())
	}
	if attrs[1].Key != "dropped" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected dropped attribute")
	}
	if attrs[2].Value.AsString() != "boom" {
		t.Fatalf("unexpected error attribute: %s", attrs[2].Value.AsString())
	}
	if attrs[3].Key != "arg_3" {
		t.Fatalf("expected non-string key to become arg_3, got %q", attrs[3].Key)
	}
	if attrs[4].Key != "cycle_id" || attrs[4].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected cycle_id attribute")
	}
}

func TestLogValue(t *testing.T) {
	if got := logValue(90 * time.Second).AsString(); got != "1m30s" {
		t.Fatalf("unexpected duration value: %s", got)
	}
	if got := logValue(28.5).AsFloat64(); got != 28.5 {
		t.Fatalf("unexpected float value: %v", got)
	}

	sports := logValue([]sport.Sport{sport.NFL, sport.MLB})
	if sports.Kind() != otellog.KindSlice || len(sports.AsSlice()) != 2 || sports.AsSlice()[1].AsString() != "mlb" {
		t.Fatalf("expected sport slice, got %s", sports.Kind())
	}

	var missing *int
	if logValue(missing).Kind() != otellog.KindEmpty {
		t.Fatalf("expected nil pointer to be empty")
	}
}
