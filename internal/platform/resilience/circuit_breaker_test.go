package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold int, openTimeout time.Duration, trials int) (*CircuitBreaker, *time.Time, *[]string) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	var transitions []string
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   trials,
		OnStateChange: func(from, to CircuitState) {
			transitions = append(transitions, string(from)+"->"+string(to))
		},
	})
	b.now = func() time.Time { return now }
	return b, &now, &transitions
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, now, transitions := newTestBreaker(2, 5*time.Second, 1)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.Record(true)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.Record(true)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open trial request to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second trial request to be rejected, got %v", err)
	}

	b.Record(false)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open trial request, got %s", state)
	}

	want := []string{"closed->open", "open->half_open", "half_open->closed"}
	if len(*transitions) != len(want) {
		t.Fatalf("unexpected transitions: %v", *transitions)
	}
	for i := range want {
		if (*transitions)[i] != want[i] {
			t.Fatalf("transition %d = %s, want %s", i, (*transitions)[i], want[i])
		}
	}
}

func TestCircuitBreaker_FailedTrialReopens(t *testing.T) {
	b, now, _ := newTestBreaker(1, time.Second, 1)

	b.Record(true)
	*now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected trial request to pass, got %v", err)
	}
	b.Record(true)

	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after failed trial request, got %s", state)
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	b, _, _ := newTestBreaker(2, time.Second, 1)

	b.Record(true)
	b.Record(false)
	b.Record(true)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed when failures are not consecutive, got %s", state)
	}
}

func TestCircuitBreakerConfig_NormalizeKeepsEnabled(t *testing.T) {
	cfg := CircuitBreakerConfig{}.Normalize()
	if cfg.Enabled {
		t.Fatalf("normalize must not enable a disabled breaker")
	}
	if cfg.FailureThreshold != 5 || cfg.OpenTimeout != 30*time.Second || cfg.HalfOpenMaxReq != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
