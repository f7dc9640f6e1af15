package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultLogFile returns the default debug log location, ~/.weavr/weavr.log.
func DefaultLogFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".weavr", "weavr.log"), nil
}

// File writes timestamped messages to a log file from a background
// goroutine, so logging never blocks the UI loop.
type File struct {
	messages chan string
	file     *os.File
	done     sync.WaitGroup
	mu       sync.Mutex // guards file during Close
	dropped  atomic.Int64
}

// NewFile opens (or creates) the log file at path for appending and
// starts the writer goroutine. The parent directory is created if needed.
func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	l := &File{
		messages: make(chan string, 256),
		file:     f,
	}
	l.done.Add(1)
	go l.writer()
	return l, nil
}

func (l *File) writer() {
	defer l.done.Done()
	for msg := range l.messages {
		l.mu.Lock()
		if l.file != nil {
			_, _ = l.file.WriteString(msg)
		}
		l.mu.Unlock()
	}
}

// Log queues one formatted message. If the buffer is full the message is
// dropped and counted rather than blocking the caller.
func (l *File) Log(format string, args ...interface{}) {
	ts := time.Now().Format("2006-01-02T15:04:05.000Z07:00")
	msg := fmt.Sprintf("[%s] %s\n", ts, fmt.Sprintf(format, args...))
	select {
	case l.messages <- msg:
	default:
		l.dropped.Add(1)
	}
}

// IsEnabled always returns true.
func (l *File) IsEnabled() bool {
	return true
}

// Dropped returns how many messages were discarded because the buffer
// was full.
func (l *File) Dropped() int64 {
	return l.dropped.Load()
}

// Close flushes queued messages and closes the file.
func (l *File) Close() error {
	close(l.messages)
	l.done.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

var _ Logger = (*File)(nil)
