// Package runlog provides the per-run execution log. Every entry goes to the
// operator's stderr and to an in-memory copy that the reports embed.
package runlog

import (
	"bytes"
	"io"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is a zap logger teed to stderr and to a buffer.
type Log struct {
	logger *zap.Logger
	buf    *lockedBuffer
}

// lockedBuffer is a zapcore.WriteSyncer safe for concurrent writers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Sync() error { return nil }

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// encoderConfig drops the time key so that the embedded log is stable across runs.
func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.StacktraceKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

// New builds a Log at the given level. A nil stderr disables the terminal copy.
func New(level zapcore.Level, stderr io.Writer) *Log {
	buf := &lockedBuffer{}
	enc := zapcore.NewConsoleEncoder(encoderConfig())

	cores := []zapcore.Core{zapcore.NewCore(enc, buf, level)}
	if stderr != nil {
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.Lock(zapcore.AddSync(stderr)), level))
	}
	return &Log{logger: zap.New(zapcore.NewTee(cores...)), buf: buf}
}

// Nop returns a Log that records nothing.
func Nop() *Log {
	return &Log{logger: zap.NewNop(), buf: &lockedBuffer{}}
}

// Logger returns the underlying zap logger.
func (l *Log) Logger() *zap.Logger { return l.logger }

// String returns everything logged so far.
func (l *Log) String() string {
	_ = l.logger.Sync()
	return l.buf.String()
}
