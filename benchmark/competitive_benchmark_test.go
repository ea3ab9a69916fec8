package benchmark

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/dispatch"
	"github.com/philipp01105/asynclog/formatter"
	"github.com/philipp01105/asynclog/logger"
	"github.com/philipp01105/asynclog/sink"
	"github.com/philipp01105/asynclog/sink/consolesink"
	"github.com/philipp01105/asynclog/sink/logrussink"
	"github.com/philipp01105/asynclog/sink/slogsink"
	"github.com/philipp01105/asynclog/sink/zapsink"
	"github.com/philipp01105/asynclog/sink/zerologsink"
)

// ---------------------------------------------------------------------------
// Helpers – identical destination for every framework (io.Discard)
// ---------------------------------------------------------------------------

func newZapLogger() *zap.Logger {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	c := zapcore.NewCore(enc, zapcore.AddSync(io.Discard), zap.DebugLevel)
	return zap.New(c)
}

func newSlogHandler() slog.Handler {
	return slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
}

func newLogrusLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.DebugLevel)
	return l
}

func newZerologLogger() zerolog.Logger {
	return zerolog.New(io.Discard).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}

// dispatched returns a Logger over a dispatcher feeding s. The queue is
// unbounded so the producer never waits on the worker.
func dispatched(b *testing.B, s sink.Sink) *logger.Logger {
	d := dispatch.New(s, dispatch.Config{Level: core.DebugLevel, Capacity: dispatch.Unbounded})
	b.Cleanup(func() { _ = d.Close() })
	return logger.NewBuilder().WithDispatcher(d).Build()
}

func backends() map[string]func() sink.Sink {
	return map[string]func() sink.Sink{
		"noop": func() sink.Sink { return noopSink{} },
		"json": func() sink.Sink {
			return consolesink.New(consolesink.Config{
				Writer:    io.Discard,
				Formatter: formatter.NewJSONFormatter(formatter.Config{}),
			})
		},
		"zap":     func() sink.Sink { return zapsink.FromLogger(newZapLogger()) },
		"slog":    func() sink.Sink { return slogsink.New(newSlogHandler()) },
		"logrus":  func() sink.Sink { return logrussink.New(newLogrusLogger()) },
		"zerolog": func() sink.Sink { return zerologsink.Wrap(newZerologLogger(), io.Discard) },
	}
}

// ---------------------------------------------------------------------------
// Scenario 1 – Info message, no fields
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_InfoNoFields(b *testing.B) {
	b.Run("direct/zap", func(b *testing.B) {
		l := newZapLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("direct/slog", func(b *testing.B) {
		l := slog.New(newSlogHandler())
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("direct/logrus", func(b *testing.B) {
		l := newLogrusLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("direct/zerolog", func(b *testing.B) {
		l := newZerologLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info().Msg("info message")
		}
	})

	for name, mk := range backends() {
		b.Run("dispatched/"+name, func(b *testing.B) {
			l := dispatched(b, mk())
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				l.Info("info message")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Scenario 2 – Structured logging with common fields
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_InfoWithFields(b *testing.B) {
	b.Run("direct/zap", func(b *testing.B) {
		l := newZapLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("request handled",
				zap.String("method", "GET"),
				zap.Int("status", 200),
				zap.Duration("latency", 3*time.Millisecond),
			)
		}
	})

	b.Run("direct/zerolog", func(b *testing.B) {
		l := newZerologLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info().
				Str("method", "GET").
				Int("status", 200).
				Dur("latency", 3*time.Millisecond).
				Msg("request handled")
		}
	})

	for name, mk := range backends() {
		b.Run("dispatched/"+name, func(b *testing.B) {
			l := dispatched(b, mk())
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				l.Info("request handled",
					logger.String("method", "GET"),
					logger.Int("status", 200),
					logger.Duration("latency", 3*time.Millisecond),
				)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Scenario 3 – Disabled level
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_Disabled(b *testing.B) {
	b.Run("direct/zap", func(b *testing.B) {
		l := newZapLogger().WithOptions(zap.IncreaseLevel(zap.WarnLevel))
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("filtered", zap.Int("i", i))
		}
	})

	b.Run("dispatched", func(b *testing.B) {
		d := dispatch.New(noopSink{}, dispatch.Config{Level: core.WarnLevel})
		b.Cleanup(func() { _ = d.Close() })
		l := logger.NewBuilder().WithDispatcher(d).Build()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("filtered", logger.Int("i", i))
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 4 – Parallel producers
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_Parallel(b *testing.B) {
	b.Run("direct/zap", func(b *testing.B) {
		l := newZapLogger()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("parallel message")
			}
		})
	})

	for _, policy := range []dispatch.OverflowPolicy{dispatch.Block, dispatch.DropNewest, dispatch.DropOldest} {
		b.Run("dispatched/"+policy.String(), func(b *testing.B) {
			d := dispatch.New(zapsink.FromLogger(newZapLogger()), dispatch.Config{
				Level:          core.InfoLevel,
				Capacity:       4096,
				OverflowPolicy: policy,
			})
			b.Cleanup(func() { _ = d.Close() })
			l := logger.NewBuilder().WithDispatcher(d).Build()
			b.ReportAllocs()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					l.Info("parallel message")
				}
			})
		})
	}
}
