package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/ports"
)

func record(ts time.Time, instruction, command string) domain.HistoryRecord {
	return domain.HistoryRecord{
		Timestamp:   ts,
		RunID:       instruction,
		Instruction: instruction,
		Command:     command,
		Model:       domain.DefaultModel,
		Dialect:     domain.DialectPOSIX,
		Tier:        "safe",
		Outcome:     domain.OutcomeExecuted,
		Executed:    true,
		Success:     true,
	}
}

func stores(t *testing.T) map[string]ports.HistoryRepository {
	t.Helper()
	dir := t.TempDir()
	sqlite, err := NewSQLiteStore(DefaultSQLitePath(dir))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]ports.HistoryRepository{
		"sqlite": sqlite,
		"file":   NewFileStore(DefaultFilePath(dir)),
	}
}

func TestStores_SaveAndRecords(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(record(base, "list files", "ls -la")))
			require.NoError(t, store.Save(record(base.Add(500*time.Millisecond), "git state", "git status")))
			require.NoError(t, store.Save(record(base.Add(time.Second), "disk usage", "df -h")))

			all, err := store.Records(0, "")
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "df -h", all[0].Command)
			assert.Equal(t, "git status", all[1].Command)
			assert.Equal(t, domain.DialectPOSIX, all[0].Dialect)
			assert.True(t, all[0].Success)
			assert.True(t, all[0].Timestamp.Equal(base.Add(time.Second)))

			limited, err := store.Records(1, "")
			require.NoError(t, err)
			require.Len(t, limited, 1)

			found, err := store.Records(0, "GIT")
			require.NoError(t, err)
			require.Len(t, found, 1)
			assert.Equal(t, "git state", found[0].Instruction)
		})
	}
}

func TestStores_PruneAndClear(t *testing.T) {
	now := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(record(now.AddDate(0, 0, -40), "old", "ls")))
			require.NoError(t, store.Save(record(now.AddDate(0, 0, -1), "recent", "pwd")))

			n, err := store.Prune(now.AddDate(0, 0, -30))
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			left, err := store.Records(0, "")
			require.NoError(t, err)
			require.Len(t, left, 1)
			assert.Equal(t, "recent", left[0].Instruction)

			require.NoError(t, store.Clear())
			left, err = store.Records(0, "")
			require.NoError(t, err)
			assert.Empty(t, left)
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "history", "history.db"), store.Path())
	if closer, ok := store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}
