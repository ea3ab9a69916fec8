package dispatch

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/philipp01105/asynclog/core"
)

// Unbounded as Config.Capacity makes the channel grow without limit
const Unbounded = -1

const (
	defaultCapacity     = 1000
	defaultBlockTimeout = 100 * time.Millisecond
)

// Config holds configuration for a Dispatcher
type Config struct {
	// Level is the initial threshold (zero value: TraceLevel, everything passes)
	Level core.Level
	// Capacity is the number of records the channel holds (default: 1000).
	// Use Unbounded to never block or drop.
	Capacity int
	// OverflowPolicy applies when the channel is full (default: Block)
	OverflowPolicy OverflowPolicy
	// BlockTimeout bounds how long Block waits for space before dropping
	// (default: 100ms). A negative value waits indefinitely.
	BlockTimeout time.Duration
	// OnSinkError observes sink failures, called with a *SinkError
	// (default: discard; failures are still counted in Stats)
	OnSinkError ErrorHandler
	// OnDrop observes records lost to a full or closed channel
	OnDrop func(rec core.Record, err error)
}

// applyDefaults fills in zero-value fields with defaults.
func applyDefaults(cfg *Config) {
	if cfg.Capacity == 0 {
		cfg.Capacity = defaultCapacity
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = defaultBlockTimeout
	}
}

// ConfigFromEnv reads a Config from environment variables named
// <prefix>_LEVEL, <prefix>_CAPACITY, <prefix>_OVERFLOW and
// <prefix>_BLOCK_TIMEOUT. Unset or malformed numeric values keep their
// defaults; an unknown overflow policy is an error. The level defaults
// to INFO.
func ConfigFromEnv(prefix string) (Config, error) {
	key := func(name string) string {
		if prefix == "" {
			return name
		}
		return strings.TrimSuffix(prefix, "_") + "_" + name
	}

	cfg := Config{
		Level:        core.ParseLevel(getEnvString(key("LEVEL"), "INFO")),
		Capacity:     getEnvInt(key("CAPACITY"), defaultCapacity),
		BlockTimeout: getEnvDuration(key("BLOCK_TIMEOUT"), defaultBlockTimeout),
	}

	policy, err := ParseOverflowPolicy(os.Getenv(key("OVERFLOW")))
	if err != nil {
		return cfg, err
	}
	cfg.OverflowPolicy = policy
	return cfg, nil
}

func getEnvString(key string, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}

func getEnvInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(val)
	if err != nil {
		return defaultValue
	}

	return duration
}
