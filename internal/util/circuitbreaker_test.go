package util

import (
	"testing"
	"time"
)

func TestCircuitBreakerOpensAtThreshold(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker("kokkai", 3, 30*time.Second, nil)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	cb.RecordFailure()
	if !cb.CanExecute() {
		t.Fatalf("breaker should stay closed below the threshold")
	}

	cb.RecordFailure()
	if cb.CanExecute() {
		t.Fatalf("breaker should open at the threshold")
	}
	if status := cb.Status(); status.State != CircuitStateOpen || status.NextRetryTime == nil {
		t.Fatalf("unexpected status: %+v", status)
	}

	now = now.Add(31 * time.Second)
	if state := cb.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected HALF_OPEN after the reset timeout, got %s", state)
	}

	cb.RecordSuccess()
	if state := cb.State(); state != CircuitStateClosed {
		t.Fatalf("expected CLOSED after a successful trial, got %s", state)
	}
}

func TestCircuitBreakerReopensOnFailedTrial(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker("kokkai", 1, time.Minute, nil)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	now = now.Add(2 * time.Minute)
	if cb.State() != CircuitStateHalfOpen {
		t.Fatalf("expected HALF_OPEN")
	}

	cb.RecordFailure()
	if cb.CanExecute() {
		t.Fatalf("a failed trial must reopen the circuit")
	}
}

func TestCircuitBreakerAdmitsOneTrialWhenHalfOpen(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker("kokkai", 1, time.Minute, nil)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	now = now.Add(2 * time.Minute)

	if !cb.CanExecute() {
		t.Fatalf("the first caller after the timeout must be admitted")
	}
	if cb.CanExecute() {
		t.Fatalf("a second caller must wait for the trial outcome")
	}

	cb.Release()
	if !cb.CanExecute() {
		t.Fatalf("a released trial must admit the next caller")
	}

	cb.RecordSuccess()
	if cb.State() != CircuitStateClosed {
		t.Fatalf("expected CLOSED after a successful trial")
	}
	if !cb.CanExecute() || !cb.CanExecute() {
		t.Fatalf("a closed circuit must admit every caller")
	}
}
