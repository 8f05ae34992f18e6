// Package sqlutil holds small database/sql helpers.
package sqlutil

import "database/sql"

// ScanRows scans all rows with scan and closes rows. The result is never
// nil, so an empty query yields an empty slice.
func ScanRows[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// ScanString scans a single string column.
func ScanString(rows *sql.Rows) (string, error) {
	var s string
	err := rows.Scan(&s)
	return s, err
}
