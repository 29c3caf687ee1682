package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold, halfOpenMax int, openTimeout time.Duration) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMax,
	})
	clock := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return clock }
	return b, &clock
}

func TestCircuitBreaker_OpensAfterThresholdAndRecovers(t *testing.T) {
	b, clock := newTestBreaker(2, 1, 5*time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("closed breaker must allow requests: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("one failure below threshold, want closed got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("threshold reached, want open got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("open breaker must reject, got %v", err)
	}

	*clock = clock.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("after the open window a probe must pass: %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("want half-open while probing, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("successful probe must close the breaker, got %s", state)
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b, clock := newTestBreaker(1, 1, 5*time.Second)

	b.RecordFailure()
	*clock = clock.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("probe should be admitted: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("failed probe must reopen the breaker, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("reopened breaker must reject, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpenLimitsProbes(t *testing.T) {
	b, clock := newTestBreaker(1, 1, 5*time.Second)

	b.RecordFailure()
	*clock = clock.Add(6 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("first probe should be admitted: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("second concurrent probe must be rejected, got %v", err)
	}
}

func TestNormalizeCircuitBreakerConfig_ClampsToDefaults(t *testing.T) {
	got := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{})
	want := DefaultCircuitBreakerConfig()
	if got.FailureThreshold != want.FailureThreshold || got.OpenTimeout != want.OpenTimeout || got.HalfOpenMaxReq != want.HalfOpenMaxReq {
		t.Fatalf("zero config must clamp to defaults: got %+v", got)
	}
}
