package sqlutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestScanRows(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE t (name TEXT); INSERT INTO t VALUES ('b'), ('a')`)
	require.NoError(t, err)

	rows, err := db.Query(`SELECT name FROM t ORDER BY name`)
	require.NoError(t, err)
	names, err := ScanRows(rows, ScanString)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	rows, err = db.Query(`SELECT name FROM t WHERE name = 'zzz'`)
	require.NoError(t, err)
	names, err = ScanRows(rows, ScanString)
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}
