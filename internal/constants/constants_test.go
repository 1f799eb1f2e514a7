package constants

import (
	"strings"
	"testing"
	"time"
)

func TestScraperDefaults(t *testing.T) {
	if ScraperConfig.ProfileDelay != 300*time.Millisecond {
		t.Fatalf("unexpected profile delay %v", ScraperConfig.ProfileDelay)
	}
	if ScraperConfig.MinRowCells != 4 {
		t.Fatalf("unexpected minimum row cells %d", ScraperConfig.MinRowCells)
	}
	if len(ShugiinListURLs) != 10 {
		t.Fatalf("expected ten kana pages, got %d", len(ShugiinListURLs))
	}
	for _, template := range []string{PhotoURLTemplates.Shugiin, PhotoURLTemplates.Sangiin} {
		if !strings.Contains(template, "{id}") {
			t.Fatalf("photo template %q has no id placeholder", template)
		}
	}
}

func TestCircuitBreakerDefaults(t *testing.T) {
	if CircuitBreakerConfig.FailureThreshold != 3 || CircuitBreakerConfig.ResetTimeout != 30*time.Second {
		t.Fatalf("unexpected breaker defaults: %+v", CircuitBreakerConfig)
	}
}
