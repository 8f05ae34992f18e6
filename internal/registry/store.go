package registry

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/binbandit/keychainctl/internal/logging"
)

// File names inside the configuration directory.
const (
	TextFileName   = "registry.txt"
	SQLiteFileName = "registry.db"
)

// Drivers accepted by Open.
const (
	DriverText   = "text"
	DriverSQLite = "sqlite"
)

// Store persists the registry.
//
// Add and Remove are load-mutate-save cycles; callers run them only after
// the secret store accepted the corresponding change.
type Store interface {
	Load() (Mapping, error)
	Save(m Mapping) error
	Add(account, service string) error
	Remove(account, service string) error
	List(account string) ([]string, error)
	Close() error
}

// IOError reports a registry read or write failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("registry %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Open returns the store for driver rooted at dir.
func Open(driver, dir string, log logging.Logger) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverText:
		return NewFileStore(filepath.Join(dir, TextFileName), log), nil
	case DriverSQLite:
		return OpenSQLite(filepath.Join(dir, SQLiteFileName), log)
	default:
		return nil, fmt.Errorf("unknown registry driver %q (want %q or %q)", driver, DriverText, DriverSQLite)
	}
}
