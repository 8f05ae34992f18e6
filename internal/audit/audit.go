// Package audit provides an append-only log of secret store mutations.
//
// Entries name the account, service and backend of each set or delete. They
// never contain secret values.
package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Operations recorded in the log.
const (
	OpSet    = "set"
	OpDelete = "delete"
)

// Entry is a single audit log line.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"ts"`
	Operation string    `json:"op"`
	Account   string    `json:"account"`
	Service   string    `json:"service"`
	Backend   string    `json:"backend,omitempty"`
}

// Logger appends entries to a JSON-lines file.
type Logger struct {
	path    string
	enabled bool
	now     func() time.Time
	mu      sync.Mutex
}

// New returns a logger writing to path. A disabled logger is a no-op.
func New(path string, enabled bool) *Logger {
	return &Logger{path: path, enabled: enabled, now: time.Now}
}

// Enabled reports whether entries are written.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// Log appends entry, filling in ID and Timestamp when unset.
func (l *Logger) Log(entry Entry) error {
	if !l.Enabled() {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o700); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}

// LogSet records a stored secret.
func (l *Logger) LogSet(account, service, backend string) error {
	return l.Log(Entry{Operation: OpSet, Account: account, Service: service, Backend: backend})
}

// LogDelete records a removed secret.
func (l *Logger) LogDelete(account, service, backend string) error {
	return l.Log(Entry{Operation: OpDelete, Account: account, Service: service, Backend: backend})
}

// Read returns every entry in file order. Malformed lines are skipped and a
// missing file is an empty log.
func (l *Logger) Read() ([]Entry, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ReadForAccount returns the entries for account.
func (l *Logger) ReadForAccount(account string) ([]Entry, error) {
	all, err := l.Read()
	if err != nil {
		return nil, err
	}

	var filtered []Entry
	for _, entry := range all {
		if entry.Account == account {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

// Tail returns the last n entries (all entries when n <= 0).
func Tail(entries []Entry, n int) []Entry {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
