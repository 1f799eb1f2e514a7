package cache

import "testing"

func TestKey(t *testing.T) {
	tests := []struct {
		parts    []string
		expected string
	}{
		{[]string{"speech", "abc"}, "kokkai:speech:abc"},
		{[]string{"meeting", "", "abc"}, "kokkai:meeting:abc"},
		{nil, "kokkai"},
	}

	for _, tt := range tests {
		if got := Key(tt.parts...); got != tt.expected {
			t.Errorf("Key(%v) = %q, expected %q", tt.parts, got, tt.expected)
		}
	}
}

func TestCacheConfigAddr(t *testing.T) {
	cfg := CacheConfig{Host: "redis", Port: 6380}
	if cfg.Addr() != "redis:6380" {
		t.Fatalf("unexpected addr: %s", cfg.Addr())
	}
}
