// Package logging provides the debug logger used across weavr. Merge
// logic itself never logs; logging happens at the command and UI layer.
package logging

// Logger is the sink for debug messages.
type Logger interface {
	// Log formats and writes one message.
	Log(format string, args ...interface{})
	// IsEnabled reports whether messages are actually recorded.
	IsEnabled() bool
	// Close releases any resources held by the logger.
	Close() error
}

// Nil is a logger that discards everything.
type Nil struct{}

// NewNil creates a no-op logger.
func NewNil() *Nil {
	return &Nil{}
}

// Log does nothing.
func (l *Nil) Log(format string, args ...interface{}) {}

// IsEnabled always returns false.
func (l *Nil) IsEnabled() bool {
	return false
}

// Close does nothing.
func (l *Nil) Close() error {
	return nil
}

var _ Logger = (*Nil)(nil)
