package activity

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Event identifies the kind of entry appended to the activity log.
type Event string

const (
	EventLogin            Event = "LOGIN"
	EventLogout           Event = "LOGOUT"
	EventComplaintCreated Event = "COMPLAINT CREATED"
	EventStatusUpdate     Event = "STATUS UPDATE"
)

// ISO-8601 with millisecond precision, always UTC.
const timeLayout = "2006-01-02T15:04:05.000Z"

// Log is an append-only text sink. Each entry is one line of the form
// [<timestamp>] <EVENT>: <detail>. Appends are serialized and written with a
// single Write call so concurrent entries never interleave mid-line.
type Log struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// Open returns a log backed by the file at path. The file is created on
// first append.
func Open(path string) *Log {
	return &Log{path: path, now: time.Now}
}

// Append writes one formatted entry to the log.
func (l *Log) Append(event Event, detail string) error {
	if event == "" {
		return errors.New("activity: event is required")
	}
	line := fmt.Sprintf("[%s] %s: %s\n", l.now().UTC().Format(timeLayout), event, detail)

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("activity: open log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte(line)); err != nil {
		return fmt.Errorf("activity: append: %w", err)
	}
	return nil
}

// Tail returns the last n lines of the log. A missing or empty log yields an
// empty slice, not an error.
func (l *Log) Tail(n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("activity: read log: %w", err)
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return []string{}, nil
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
