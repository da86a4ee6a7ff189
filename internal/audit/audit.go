// Package audit writes one newline-delimited JSON record per decision.
// Grounded on jeranaias-rigrun's internal/security.AuditLogger, trimmed
// down substantially: no HMAC hash-chaining and no circuit breaker, since
// maintaining cryptographic integrity of the decision trail is explicitly
// out of scope here. What's kept is the shape that matters: swallow any
// write error, never let audit logging fail the actual decision.
package audit

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// Event is one audit record.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	ToolName  string    `json:"tool_name"`
	Command   string    `json:"command,omitempty"`
	Decision  string    `json:"decision"`
	Reason    string    `json:"reason,omitempty"`
}

// Logger appends Events to a file, one JSON object per line.
type Logger struct {
	mu sync.Mutex
	f  *os.File
}

// Open opens (creating and appending to) the audit log at path. A Logger
// with a nil file is valid and silently discards every Log call, which is
// what an unconfigured audit log (Non-goal: audit logging is not required
// to be reliable) degrades to.
func Open(path string) (*Logger, error) {
	if path == "" {
		return &Logger{}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return &Logger{f: f}, nil
}

// Log appends evt as one JSON line. Any error (disk full, permission
// denied, closed file) is swallowed: an audit log write must never be the
// reason a tool call is blocked or a decision fails to return.
func (l *Logger) Log(evt Event) {
	if l == nil || l.f == nil {
		return
	}

	line, err := json.Marshal(evt)
	if err != nil {
		return
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.f.Write(line)
}

// Close closes the underlying file, if any.
func (l *Logger) Close() error {
	if l == nil || l.f == nil {
		return nil
	}
	return l.f.Close()
}
