// Package ledgerlog provides structured per-operation logging for the timed
// token. Entries go to a dated JSON-lines file; console mirroring uses the
// standard logrus text formatter.
package ledgerlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	log     *logrus.Logger
	console *logrus.Logger
	file    *os.File
	mu      sync.Mutex
	enabled bool
}

// New creates an operation logger writing JSON lines under dir.
func New(dir string, level logrus.Level) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	name := fmt.Sprintf("ledger_ops_%s.jsonl", time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	fileLog := logrus.New()
	fileLog.SetOutput(file)
	fileLog.SetFormatter(&logrus.JSONFormatter{})
	fileLog.SetLevel(level)

	console := logrus.New()
	console.SetLevel(level)
	console.SetFormatter(&logrus.TextFormatter{
		ForceColors: true,
	})

	return &Logger{
		log:     fileLog,
		console: console,
		file:    file,
		enabled: true,
	}, nil
}

// Discard returns a logger that drops everything; handy for tests.
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{log: l, console: l, enabled: true}
}

// Enable turns logging on or off.
func (l *Logger) Enable(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// Operation logs one ledger operation. A nil err logs at info level with
// status "success"; otherwise the entry carries the failure reason.
func (l *Logger) Operation(op, from, to string, amount uint64, err error, extra logrus.Fields) {
	l.mu.Lock()
	enabled := l.enabled
	l.mu.Unlock()
	if !enabled {
		return
	}

	fields := logrus.Fields{
		"operation": op,
		"amount":    amount,
	}
	if from != "" {
		fields["from"] = from
	}
	if to != "" {
		fields["to"] = to
	}
	for k, v := range extra {
		fields[k] = v
	}

	if err != nil {
		fields["status"] = "failed"
		fields["error"] = err.Error()
		l.log.WithFields(fields).Warn("ledger operation failed")
		l.console.WithFields(fields).Warn("ledger operation failed")
		return
	}

	fields["status"] = "success"
	l.log.WithFields(fields).Info("ledger operation")
	l.console.WithFields(fields).Info("ledger operation")
}

// Close flushes and closes the underlying log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

var (
	globalMu sync.RWMutex
	global   *Logger
)

// Init installs the global operation logger.
func Init(dir string, level logrus.Level) error {
	logger, err := New(dir, level)
	if err != nil {
		return fmt.Errorf("initialize ledger operation logger: %w", err)
	}

	globalMu.Lock()
	global = logger
	globalMu.Unlock()

	logrus.Infof("ledger operation logger initialized in %s", dir)
	return nil
}

// Operation logs through the global logger when one is installed, otherwise
// falls back to a plain console line.
func Operation(op, from, to string, amount uint64, err error, extra logrus.Fields) {
	globalMu.RLock()
	logger := global
	globalMu.RUnlock()

	if logger == nil {
		if err != nil {
			logrus.Warnf("[%s] %s→%s amount=%d failed: %v", op, from, to, amount, err)
		} else {
			logrus.Infof("[%s] %s→%s amount=%d", op, from, to, amount)
		}
		return
	}
	logger.Operation(op, from, to, amount, err, extra)
}
