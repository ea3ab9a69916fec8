package logger_test

import (
	"context"
	"io"
	"os"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/dispatch"
	"github.com/philipp01105/asynclog/formatter"
	"github.com/philipp01105/asynclog/logger"
	"github.com/philipp01105/asynclog/sink/consolesink"
)

// Install the global logger once at startup and shut it down on exit.
func Example() {
	s := consolesink.New(consolesink.Config{Writer: os.Stdout})
	logger.Init(s, logger.InfoLevel)
	defer logger.Shutdown(context.Background())

	logger.Info("Application started")
	logger.Info("User login",
		logger.String("username", "alice"),
		logger.Int("user_id", 123),
	)
}

// Create a custom Logger with the Builder pattern.
func ExampleNewBuilder() {
	d := dispatch.New(consolesink.New(consolesink.Config{
		Writer: io.Discard,
		Formatter: formatter.NewTextFormatter(formatter.Config{
			IncludeCaller: true,
		}),
	}), dispatch.Config{Level: core.DebugLevel})
	defer d.Close()

	log := logger.NewBuilder().
		WithDispatcher(d).
		WithTarget("api").
		WithCaller(true).
		WithFields(logger.String("service", "api")).
		Build()

	log.Info("ready", logger.Int("port", 8080))
}

// Use With to create a child logger with persistent context fields.
func ExampleLogger_With() {
	d := dispatch.Start(consolesink.New(consolesink.Config{Writer: io.Discard}), core.InfoLevel)
	defer d.Close()

	log := logger.NewBuilder().
		WithDispatcher(d).
		Build()

	reqLog := log.With(
		logger.String("request_id", "req-12345"),
		logger.String("method", "GET"),
	)

	reqLog.Info("Processing request", logger.String("path", "/api/users"))
	reqLog.Info("Request completed", logger.Int("status", 200))
}
