package runenv

import (
	"testing"
	"time"
)

func TestConnectTimeoutDefault(t *testing.T) {
	t.Setenv(ConnectTimeoutEnv, "")
	if got := ConnectTimeout(); got != 10*time.Second {
		t.Fatalf("expected default timeout 10s, got %v", got)
	}
}

func TestConnectTimeoutDuration(t *testing.T) {
	t.Setenv(ConnectTimeoutEnv, "12s")
	if got := ConnectTimeout(); got != 12*time.Second {
		t.Fatalf("expected 12s, got %v", got)
	}
}

func TestConnectTimeoutSecondsNumber(t *testing.T) {
	t.Setenv(ConnectTimeoutEnv, "9")
	if got := ConnectTimeout(); got != 9*time.Second {
		t.Fatalf("expected 9s, got %v", got)
	}
}

func TestConnectTimeoutInvalid(t *testing.T) {
	t.Setenv(ConnectTimeoutEnv, "nope")
	if got := ConnectTimeout(); got != 10*time.Second {
		t.Fatalf("expected default timeout on invalid value, got %v", got)
	}
}

func TestConnectTimeoutNonPositive(t *testing.T) {
	t.Setenv(ConnectTimeoutEnv, "-3")
	if got := ConnectTimeout(); got != 10*time.Second {
		t.Fatalf("expected default timeout on non-positive value, got %v", got)
	}
	t.Setenv(ConnectTimeoutEnv, "0s")
	if got := ConnectTimeout(); got != 10*time.Second {
		t.Fatalf("expected default timeout on zero duration, got %v", got)
	}
}
