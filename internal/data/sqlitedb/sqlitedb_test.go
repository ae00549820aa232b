package sqlitedb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "app.db")
	db, err := Open(path, 0)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_RejectsDirectoryAndEmptyPath(t *testing.T) {
	_, err := Open(t.TempDir(), 0)
	assert.Error(t, err)

	_, err = Open("   ", 0)
	assert.Error(t, err)
}

func TestOpen_Memory(t *testing.T) {
	db, err := Open(MemoryPath, 0)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE t (v INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO t (v) VALUES (1)`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestWithRetry_RetriesLockErrorsOnly(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), "test", "locked op", func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked (5) (SQLITE_BUSY)")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = WithRetry(context.Background(), "test", "syntax op", func() error {
		calls++
		return errors.New("near \"SELEC\": syntax error")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "syntax op")
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsLockError(errors.New("database is locked")))
	assert.True(t, IsCorruptError(errors.New("file is not a database")))
	assert.True(t, IsUnavailable(errors.New("unable to open database file")))
	assert.True(t, IsUnavailable(errors.New("sql: database is closed")))
	assert.False(t, IsUnavailable(errors.New("no such column: foo")))
	assert.False(t, IsUnavailable(nil))
}
