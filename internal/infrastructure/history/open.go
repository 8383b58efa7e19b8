package history

import (
	"github.com/doeshing/ganpi-go/internal/ports"
)

// Open returns the SQLite store under appDir, or the jsonl store when SQLite
// cannot be opened. The second return value is the SQLite error, if any.
func Open(appDir string) (ports.HistoryRepository, error) {
	store, err := NewSQLiteStore(DefaultSQLitePath(appDir))
	if err != nil {
		return NewFileStore(DefaultFilePath(appDir)), err
	}
	return store, nil
}
