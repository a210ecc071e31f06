// Package logger provides structured logging for docquery.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"docquery/internal/answer"
)

// Logger wraps zerolog with docquery-specific helpers.
type Logger struct {
	zlog zerolog.Logger
}

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // console output for development
	Output io.Writer
}

func New(cfg Config) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	zlog := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("service", "docquery").
		Logger()
	return &Logger{zlog: zlog}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

func (l *Logger) Info() *zerolog.Event  { return l.zlog.Info() }
func (l *Logger) Debug() *zerolog.Event { return l.zlog.Debug() }
func (l *Logger) Warn() *zerolog.Event  { return l.zlog.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zlog.Error() }

// Component returns a child logger tagged with a component name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{zlog: l.zlog.With().Str("component", name).Logger()}
}

// LogRequest logs a completed HTTP request.
func (l *Logger) LogRequest(method, path string, status int, duration time.Duration) {
	event := l.zlog.Info()
	if status >= 500 {
		event = l.zlog.Error()
	}
	event.
		Str("component", "http").
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Dur("duration_ms", duration).
		Msg("request completed")
}

// LogLLMCall logs one provider call.
func (l *Logger) LogLLMCall(provider, model, operation string, duration time.Duration, err error) {
	event := l.zlog.Info()
	if err != nil {
		event = l.zlog.Warn().Err(err)
	}
	event.
		Str("component", "llm").
		Str("provider", provider).
		Str("model", model).
		Str("operation", operation).
		Dur("duration_ms", duration).
		Msg("llm call completed")
}

// AnswerMonitor records cascade events at debug level.
func (l *Logger) AnswerMonitor() answer.Monitor {
	return answerMonitor{zlog: l.zlog.With().Str("component", "answer").Logger()}
}

type answerMonitor struct {
	zlog zerolog.Logger
}

func (m answerMonitor) Start(query string, keywords []string) {
	m.zlog.Debug().Str("query", query).Strs("keywords", keywords).Msg("answer started")
}

func (m answerMonitor) TierAttempted(s answer.Strategy) {
	m.zlog.Debug().Stringer("tier", s).Msg("tier attempted")
}

func (m answerMonitor) TierFailed(s answer.Strategy, err error) {
	m.zlog.Warn().Stringer("tier", s).Err(err).Msg("tier failed")
}

func (m answerMonitor) TierEmpty(s answer.Strategy) {
	m.zlog.Debug().Stringer("tier", s).Msg("tier empty")
}

func (m answerMonitor) TierMatched(s answer.Strategy, candidates int) {
	m.zlog.Debug().Stringer("tier", s).Int("candidates", candidates).Msg("tier matched")
}

func (m answerMonitor) Finish(res answer.Result) {
	m.zlog.Debug().
		Bool("found", res.Found()).
		Stringer("pattern_used", res.PatternUsed).
		Int("matches", len(res.Matches)).
		Msg("answer finished")
}
