package registry

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/binbandit/keychainctl/internal/atomicfile"
	"github.com/binbandit/keychainctl/internal/logging"
	"github.com/binbandit/keychainctl/internal/sqlutil"
)

const sqliteSchema = `
	PRAGMA journal_mode = WAL;
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS services (
		account TEXT NOT NULL,
		service TEXT NOT NULL,
		PRIMARY KEY (account, service)
	) WITHOUT ROWID;
`

// SQLiteStore keeps the registry in an SQLite database. Add and Remove are
// single statements, so concurrent invocations do not lose updates.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  logging.Logger
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string, log logging.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), atomicfile.DirPerm); err != nil {
		return nil, &IOError{Op: "create directory", Path: filepath.Dir(path), Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, &IOError{Op: "initialize", Path: path, Err: err}
	}

	return &SQLiteStore{db: db, path: path, log: log}, nil
}

// Load implements Store.
func (s *SQLiteStore) Load() (Mapping, error) {
	rows, err := s.db.Query(`SELECT account, service FROM services`)
	if err != nil {
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}
	pairs, err := sqlutil.ScanRows(rows, func(r *sql.Rows) ([2]string, error) {
		var p [2]string
		err := r.Scan(&p[0], &p[1])
		return p, err
	})
	if err != nil {
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}

	m := make(Mapping)
	for _, p := range pairs {
		m.Add(p[0], p[1])
	}
	return m, nil
}

// Save replaces every record with the contents of m in one transaction.
func (s *SQLiteStore) Save(m Mapping) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM services`); err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	stmt, err := tx.Prepare(`INSERT INTO services (account, service) VALUES (?, ?)`)
	if err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	defer stmt.Close()

	for _, account := range m.Accounts() {
		for _, service := range m.Services(account) {
			if _, err := stmt.Exec(account, service); err != nil {
				return &IOError{Op: "write", Path: s.path, Err: err}
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return &IOError{Op: "commit", Path: s.path, Err: err}
	}
	return nil
}

// Add implements Store.
func (s *SQLiteStore) Add(account, service string) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO services (account, service) VALUES (?, ?)`, account, service)
	if err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	s.log.Debug().Str("account", account).Str("service", service).Msg("registry record added")
	return nil
}

// Remove implements Store.
func (s *SQLiteStore) Remove(account, service string) error {
	res, err := s.db.Exec(`DELETE FROM services WHERE account = ? AND service = ?`, account, service)
	if err != nil {
		return &IOError{Op: "write", Path: s.path, Err: err}
	}
	if n, _ := res.RowsAffected(); n > 0 {
		s.log.Debug().Str("account", account).Str("service", service).Msg("registry record removed")
	}
	return nil
}

// List implements Store.
func (s *SQLiteStore) List(account string) ([]string, error) {
	rows, err := s.db.Query(`SELECT service FROM services WHERE account = ? ORDER BY service`, account)
	if err != nil {
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}
	services, err := sqlutil.ScanRows(rows, sqlutil.ScanString)
	if err != nil {
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}
	return services, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
