// Package common provides shared utilities for sharedash
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"
)

const (
	logTimeFormat     = "2006-01-02T15:04:05Z07:00"
	defaultLogFile    = "logs/sharedash.log"
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 5
)

// Logger wraps arbor.ILogger so handlers and loaders share one logging surface.
type Logger struct {
	arbor.ILogger
}

// LoggingConfig selects the writers and level of a Logger.
// Outputs accepts "console" (stderr) and "file".
type LoggingConfig struct {
	Level      string
	Outputs    []string
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
}

func (c LoggingConfig) normalized() LoggingConfig {
	if c.Level == "" {
		c.Level = "info"
	}
	if len(c.Outputs) == 0 {
		c.Outputs = []string{"console"}
	}
	if c.FilePath == "" {
		c.FilePath = defaultLogFile
	}
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = defaultMaxSizeMB
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = defaultMaxBackups
	}
	return c
}

// NewLoggerFromConfig builds an arbor logger with the configured writers.
// Unknown outputs are ignored. A memory writer is always attached.
func NewLoggerFromConfig(cfg LoggingConfig) *Logger {
	cfg = cfg.normalized()
	l := arbor.NewLogger()

	seen := make(map[string]bool, len(cfg.Outputs))
	for _, out := range cfg.Outputs {
		out = strings.ToLower(strings.TrimSpace(out))
		if seen[out] {
			continue
		}
		seen[out] = true

		switch out {
		case "console":
			l = l.WithConsoleWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeConsole,
				Writer:     os.Stderr,
				TimeFormat: logTimeFormat,
			})
		case "file":
			l = l.WithFileWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeFile,
				FileName:   cfg.FilePath,
				MaxSize:    int64(cfg.MaxSizeMB) * 1024 * 1024,
				MaxBackups: cfg.MaxBackups,
				TimeFormat: logTimeFormat,
			})
		}
	}

	l = l.WithMemoryWriter(models.WriterConfiguration{
		Type: models.LogWriterTypeMemory,
	}).WithLevelFromString(cfg.Level)

	return &Logger{ILogger: l}
}

// NewLogger creates a console logger at the given level.
func NewLogger(level string) *Logger {
	return NewLoggerFromConfig(LoggingConfig{Level: level})
}

// NewDefaultLogger creates a console logger at info level.
func NewDefaultLogger() *Logger {
	return NewLogger("info")
}

// NewLoggerWithOutput creates a logger that renders events as plain lines on w.
func NewLoggerWithOutput(level string, w io.Writer) *Logger {
	arbor.RegisterWriter(arbor.WRITER_CONSOLE, &lineWriter{out: w, level: log.TraceLevel})

	l := arbor.NewLogger().
		WithMemoryWriter(models.WriterConfiguration{
			Type: models.LogWriterTypeMemory,
		}).
		WithLevelFromString(level)

	return &Logger{ILogger: l}
}

// NewSilentLogger creates a logger that discards all output.
func NewSilentLogger() *Logger {
	return &Logger{ILogger: arbor.NewLogger().WithWriters([]writers.IWriter{discard{}})}
}

// WithCorrelationId returns a child Logger tagged with a request ID.
func (l *Logger) WithCorrelationId(id string) *Logger {
	return &Logger{ILogger: l.ILogger.WithCorrelationId(id)}
}

// discard is a writers.IWriter that drops everything, including events
// dispatched to globally registered writers.
type discard struct{}

func (discard) Write(p []byte) (int, error)           { return len(p), nil }
func (discard) WithLevel(_ log.Level) writers.IWriter { return discard{} }
func (discard) GetFilePath() string                   { return "" }
func (discard) Close() error                          { return nil }

// lineWriter renders arbor JSON events as "LEVEL message key=value ..." lines
// with keys in sorted order. Input that is not an event is written unchanged.
type lineWriter struct {
	out   io.Writer
	level log.Level
}

func (w *lineWriter) Write(p []byte) (int, error) {
	var evt models.LogEvent
	if err := json.Unmarshal(p, &evt); err != nil {
		return w.out.Write(p)
	}
	if evt.Level < w.level {
		return len(p), nil
	}

	var b strings.Builder
	b.WriteString(strings.ToUpper(evt.Level.String()))
	b.WriteByte(' ')
	b.WriteString(evt.Message)

	keys := make([]string, 0, len(evt.Fields))
	for k := range evt.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, evt.Fields[k])
	}
	if evt.Error != "" {
		fmt.Fprintf(&b, " error=%s", evt.Error)
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(w.out, b.String()); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *lineWriter) WithLevel(level log.Level) writers.IWriter {
	return &lineWriter{out: w.out, level: level}
}

func (w *lineWriter) GetFilePath() string { return "" }
func (w *lineWriter) Close() error        { return nil }
