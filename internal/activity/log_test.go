package activity

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"
)

var lineRe = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z\] LOGIN: User a@b\.c logged in$`)

func TestAppendFormat(t *testing.T) {
	log := Open(filepath.Join(t.TempDir(), "log.txt"))
	log.now = func() time.Time { return time.Date(2026, 3, 1, 12, 30, 45, 123_000_000, time.UTC) }

	if err := log.Append(EventLogin, "User a@b.c logged in"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	lines, err := log.Tail(10)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if !lineRe.MatchString(lines[0]) {
		t.Fatalf("unexpected line format: %q", lines[0])
	}
	if !strings.HasPrefix(lines[0], "[2026-03-01T12:30:45.123Z]") {
		t.Fatalf("unexpected timestamp: %q", lines[0])
	}
}

func TestTailMissingFile(t *testing.T) {
	log := Open(filepath.Join(t.TempDir(), "nope.txt"))
	lines, err := log.Tail(10)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty tail, got %v", lines)
	}
}

func TestTailReturnsLastN(t *testing.T) {
	log := Open(filepath.Join(t.TempDir(), "log.txt"))
	for i := 0; i < 15; i++ {
		if err := log.Append(EventStatusUpdate, fmt.Sprintf("entry %d", i)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	lines, err := log.Tail(10)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[9], "entry 14") {
		t.Fatalf("expected newest entry last, got %q", lines[9])
	}
	if !strings.HasSuffix(lines[0], "entry 5") {
		t.Fatalf("expected entry 5 first, got %q", lines[0])
	}
}

func TestConcurrentAppendsKeepLinesIntact(t *testing.T) {
	log := Open(filepath.Join(t.TempDir(), "log.txt"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = log.Append(EventComplaintCreated, fmt.Sprintf("complaint %d", i))
		}(i)
	}
	wg.Wait()

	lines, err := log.Tail(100)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.Contains(line, "COMPLAINT CREATED: complaint ") {
			t.Fatalf("corrupted line: %q", line)
		}
	}
}
