package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const defaultMaxSizeMB = 20

// Logger handles application logging
type Logger struct {
	file      *os.File
	logDir    string
	maxSizeMB int
	written   int64
	mu        sync.Mutex
}

// NewLogger creates a new Logger instance
func NewLogger() *Logger {
	return &Logger{maxSizeMB: defaultMaxSizeMB}
}

// Init initializes the logging to a file in the specified directory
func (l *Logger) Init(logDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.openNewFile(logDir)
}

func (l *Logger) openNewFile(logDir string) error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	dateStr := time.Now().Format("2006-01-02")
	pattern := filepath.Join(logDir, fmt.Sprintf("pitchdeck_%s_*.log", dateStr))
	matches, _ := filepath.Glob(pattern)
	runCount := len(matches) + 1
	filename := filepath.Join(logDir, fmt.Sprintf("pitchdeck_%s_%d.log", dateStr, runCount))

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	l.file = f
	l.logDir = logDir
	l.written = 0
	l.logInternal("App Started")
	return nil
}

// SetLogDir moves logging to a new directory, starting a fresh file there.
func (l *Logger) SetLogDir(logDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if logDir == "" || logDir == l.logDir {
		return nil
	}
	return l.openNewFile(logDir)
}

// SetMaxSizeMB sets the rotation threshold. Values <= 0 keep the default.
func (l *Logger) SetMaxSizeMB(sizeMB int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if sizeMB > 0 {
		l.maxSizeMB = sizeMB
	}
}

// Log writes a message to the log file
func (l *Logger) Log(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logInternal(message)
}

// Logf writes a formatted message to the log file
func (l *Logger) Logf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logInternal(fmt.Sprintf(format, args...))
}

func (l *Logger) logInternal(message string) {
	if l.file == nil {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	n, _ := fmt.Fprintf(l.file, "[%s] %s\n", timestamp, message)
	l.written += int64(n)
	if l.written > int64(l.maxSizeMB)*1024*1024 {
		// Rotate by starting a new numbered file in the same directory.
		l.openNewFile(l.logDir)
	}
}

// Close closes the log file
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.logInternal("Logging disabled or App stopped.")
		l.file.Close()
		l.file = nil
	}
}
