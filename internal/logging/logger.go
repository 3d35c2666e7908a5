// Package logging is a small leveled logger that also keeps what it logged,
// so degraded loads can be shown back to the user after the fact.
package logging

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Level orders log entries by severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Entry contains the message and metadata
type Entry struct {
	Level Level  `json:"-"`
	Name  string `json:"level"`
	Msg   string `json:"msg"`
}

// Logger writes to a standard library logger and retains non-debug entries.
// Safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	out     *log.Logger
	debug   bool
	entries []Entry
}

// New creates a logger writing to w. Debug messages are written only when
// debug is true.
func New(w io.Writer, debug bool) *Logger {
	return &Logger{out: log.New(w, "skin-studio: ", log.LstdFlags), debug: debug}
}

// Discard returns a logger that writes nowhere but still retains entries.
func Discard() *Logger {
	return New(io.Discard, false)
}

// Dbg prints a debug message
func (l *Logger) Dbg(format string, v ...any) {
	if l == nil || !l.debug {
		return
	}
	l.out.Printf("debug: %s", fmt.Sprintf(format, v...))
}

// Msg logs an informational message
func (l *Logger) Msg(format string, v ...any) {
	l.record(LevelInfo, format, v...)
}

// Warn logs a recoverable problem.
func (l *Logger) Warn(format string, v ...any) {
	l.record(LevelWarn, format, v...)
}

// Err logs an error message
func (l *Logger) Err(format string, v ...any) {
	l.record(LevelError, format, v...)
}

func (l *Logger) record(level Level, format string, v ...any) {
	if l == nil {
		return
	}
	msg := fmt.Sprintf(format, v...)
	l.mu.Lock()
	l.entries = append(l.entries, Entry{Level: level, Name: level.String(), Msg: msg})
	l.mu.Unlock()
	if level == LevelInfo {
		l.out.Println(msg)
		return
	}
	l.out.Printf("%s: %s", level, msg)
}

// Entries returns a copy of the retained entries, oldest first.
func (l *Logger) Entries() []Entry {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// EntriesAtLeast returns retained entries at or above min.
func (l *Logger) EntriesAtLeast(min Level) []Entry {
	var out []Entry
	for _, e := range l.Entries() {
		if e.Level >= min {
			out = append(out, e)
		}
	}
	return out
}
