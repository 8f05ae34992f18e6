package registry

import (
	"bytes"
	"os"
	"strings"

	"github.com/binbandit/keychainctl/internal/atomicfile"
	"github.com/binbandit/keychainctl/internal/logging"
)

// FileStore stores the registry as `account<TAB>service` lines.
//
// Concurrent invocations are not serialised: two processes racing on the
// same file can lose an update (last writer wins).
type FileStore struct {
	path string
	log  logging.Logger
}

// NewFileStore returns a FileStore backed by path.
func NewFileStore(path string, log logging.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the registry. A missing or unreadable file yields an empty
// mapping; lines without a tab are skipped.
func (s *FileStore) Load() (Mapping, error) {
	m := make(Mapping)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("registry unreadable, treating as empty")
		}
		return m, nil
	}

	skipped := 0
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		account, service, ok := strings.Cut(line, "\t")
		if !ok {
			skipped++
			continue
		}
		m.Add(account, service)
	}

	s.log.Debug().Str("path", s.path).Int("records", m.Len()).Int("skipped", skipped).Msg("registry loaded")
	return m, nil
}

// Save replaces the file with m in account-then-service order.
func (s *FileStore) Save(m Mapping) error {
	if err := atomicfile.WriteFile(s.path, Encode(m), 0); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	s.log.Debug().Str("path", s.path).Int("records", m.Len()).Msg("registry saved")
	return nil
}

// Add implements Store.
func (s *FileStore) Add(account, service string) error {
	m, err := s.Load()
	if err != nil {
		return err
	}
	m.Add(account, service)
	return s.Save(m)
}

// Remove implements Store. The file is left untouched when account was
// never tracked.
func (s *FileStore) Remove(account, service string) error {
	m, err := s.Load()
	if err != nil {
		return err
	}
	if !m.Remove(account, service) {
		return nil
	}
	return s.Save(m)
}

// List implements Store.
func (s *FileStore) List(account string) ([]string, error) {
	m, err := s.Load()
	if err != nil {
		return nil, err
	}
	return m.Services(account), nil
}

// Close implements Store.
func (s *FileStore) Close() error { return nil }

// Encode serialises m deterministically.
func Encode(m Mapping) []byte {
	var buf bytes.Buffer
	for _, account := range m.Accounts() {
		for _, service := range m.Services(account) {
			buf.WriteString(account)
			buf.WriteByte('\t')
			buf.WriteString(service)
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}
