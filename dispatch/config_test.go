package dispatch

import (
	"testing"
	"time"

	"github.com/philipp01105/asynclog/core"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("APPLOG_LEVEL", "debug")
	t.Setenv("APPLOG_CAPACITY", "-1")
	t.Setenv("APPLOG_OVERFLOW", "drop-oldest")
	t.Setenv("APPLOG_BLOCK_TIMEOUT", "25ms")

	cfg, err := ConfigFromEnv("APPLOG")
	if err != nil {
		t.Fatalf("ConfigFromEnv() error = %v", err)
	}
	if cfg.Level != core.DebugLevel {
		t.Errorf("Level = %v, want DEBUG", cfg.Level)
	}
	if cfg.Capacity != Unbounded {
		t.Errorf("Capacity = %d, want Unbounded", cfg.Capacity)
	}
	if cfg.OverflowPolicy != DropOldest {
		t.Errorf("OverflowPolicy = %v, want DropOldest", cfg.OverflowPolicy)
	}
	if cfg.BlockTimeout != 25*time.Millisecond {
		t.Errorf("BlockTimeout = %v, want 25ms", cfg.BlockTimeout)
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("EMPTY_CAPACITY", "lots")

	cfg, err := ConfigFromEnv("EMPTY_")
	if err != nil {
		t.Fatalf("ConfigFromEnv() error = %v", err)
	}
	if cfg.Level != core.InfoLevel {
		t.Errorf("Level = %v, want INFO", cfg.Level)
	}
	if cfg.Capacity != defaultCapacity {
		t.Errorf("Capacity = %d, want %d", cfg.Capacity, defaultCapacity)
	}
	if cfg.OverflowPolicy != Block || cfg.BlockTimeout != defaultBlockTimeout {
		t.Errorf("unexpected overflow settings %v %v", cfg.OverflowPolicy, cfg.BlockTimeout)
	}
}

func TestConfigFromEnv_BadPolicy(t *testing.T) {
	t.Setenv("BAD_OVERFLOW", "yolo")
	if _, err := ConfigFromEnv("BAD"); err == nil {
		t.Error("expected error for unknown overflow policy")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	applyDefaults(&cfg)
	if cfg.Capacity != defaultCapacity || cfg.BlockTimeout != defaultBlockTimeout {
		t.Errorf("applyDefaults() = %+v", cfg)
	}

	cfg = Config{Capacity: Unbounded, BlockTimeout: -1}
	applyDefaults(&cfg)
	if cfg.Capacity != Unbounded || cfg.BlockTimeout != -1 {
		t.Errorf("applyDefaults() overwrote explicit values: %+v", cfg)
	}
}
