// Package logger provides Logger implementations. The MCP transport owns
// stdout, so diagnostic output always goes to a file or nowhere.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileLogger appends timestamped lines to a log file. Write failures are
// swallowed: logging must never break the operation being logged.
type FileLogger struct {
	path string
}

// NewFileLogger creates a logger writing to session-tracker.log under dir,
// creating the directory if needed.
func NewFileLogger(dir string) *FileLogger {
	_ = os.MkdirAll(dir, 0o755)
	return &FileLogger{path: filepath.Join(dir, "session-tracker.log")}
}

func (l *FileLogger) Debug(message string) { l.write("DEBUG", message) }

func (l *FileLogger) Error(message string) { l.write("ERROR", message) }

func (l *FileLogger) write(level, message string) {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s %s %s\n", time.Now().UTC().Format(time.RFC3339), level, message)
}
