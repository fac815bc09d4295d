package recordinglog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTempLog(t *testing.T) (*BboltLog, string, func()) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	log, err := Open(dbPath)
	require.NoError(t, err)
	require.NotNil(t, log)

	cleanup := func() {
		log.Close()
		os.RemoveAll(tmpDir)
	}

	return log, dbPath, cleanup
}

func TestOpen(t *testing.T) {
	t.Run("creates new database successfully", func(t *testing.T) {
		log, dbPath, cleanup := createTempLog(t)
		defer cleanup()

		assert.NotNil(t, log)
		_, err := os.Stat(dbPath)
		assert.NoError(t, err)
	})

	t.Run("opens existing database", func(t *testing.T) {
		log, dbPath, cleanup := createTempLog(t)
		log.Close()
		defer cleanup()

		log2, err := Open(dbPath)
		require.NoError(t, err)
		assert.NotNil(t, log2)
		log2.Close()
	})

	t.Run("fails with invalid path", func(t *testing.T) {
		log, err := Open("/invalid/path/that/does/not/exist/test.db")
		assert.Error(t, err)
		assert.Nil(t, log)
	})
}

func TestBboltLog_AppendTerm(t *testing.T) {
	log, _, cleanup := createTempLog(t)
	defer cleanup()

	now := time.Now()

	t.Run("appends a term record", func(t *testing.T) {
		err := log.AppendTerm(6, 1000, now)
		assert.NoError(t, err)

		records, err := log.Records()
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(6), records[0].Term)
		assert.Equal(t, int64(1000), records[0].LogPosition)
	})

	t.Run("is idempotent on identical (term, logPosition)", func(t *testing.T) {
		err := log.AppendTerm(7, 2000, now)
		require.NoError(t, err)
		err = log.AppendTerm(7, 2000, now.Add(time.Second))
		require.NoError(t, err)

		records, err := log.Records()
		require.NoError(t, err)

		count := 0
		for _, r := range records {
			if r.Term == 7 && r.LogPosition == 2000 {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("distinct positions under the same term are kept separately", func(t *testing.T) {
		log2, _, cleanup2 := createTempLog(t)
		defer cleanup2()

		require.NoError(t, log2.AppendTerm(1, 100, now))
		require.NoError(t, log2.AppendTerm(1, 200, now))

		records, err := log2.Records()
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}

func TestBboltLog_PersistsAcrossReopens(t *testing.T) {
	log, dbPath, cleanup := createTempLog(t)
	defer cleanup()

	require.NoError(t, log.AppendTerm(3, 500, time.Now()))
	log.Close()

	log2, err := Open(dbPath)
	require.NoError(t, err)
	defer log2.Close()

	records, err := log2.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(3), records[0].Term)
	assert.Equal(t, int64(500), records[0].LogPosition)
}

func TestBboltLog_Close(t *testing.T) {
	log, _, cleanup := createTempLog(t)
	defer cleanup()

	err := log.Close()
	assert.NoError(t, err)

	err = log.AppendTerm(1, 1, time.Now())
	assert.Error(t, err)
}
