package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/ports"
)

// FileStore appends history records to a jsonl file. It backs the history
// when the SQLite database cannot be opened.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// DefaultFilePath is history/history.jsonl under appDir.
func DefaultFilePath(appDir string) string {
	return filepath.Join(appDir, "history", "history.jsonl")
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save implements ports.HistoryRepository.
func (f *FileStore) Save(record domain.HistoryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.SecureFilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = file.Write(append(data, '\n'))
	return err
}

// Records loads entries newest first, filtered by a case-insensitive substring.
func (f *FileStore) Records(limit int, search string) ([]domain.HistoryRecord, error) {
	f.mu.Lock()
	all, err := f.load()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	search = strings.ToLower(search)
	var records []domain.HistoryRecord
	for _, rec := range all {
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.Instruction), search) &&
			!strings.Contains(strings.ToLower(rec.Command), search) {
			continue
		}
		records = append(records, rec)
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Timestamp.After(records[j].Timestamp) })
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Prune rewrites the file without records older than before.
func (f *FileStore) Prune(before time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all, err := f.load()
	if err != nil || len(all) == 0 {
		return 0, err
	}

	var buf bytes.Buffer
	removed := 0
	for _, rec := range all {
		if rec.Timestamp.Before(before) {
			removed++
			continue
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return 0, err
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, os.WriteFile(f.path, buf.Bytes(), domain.SecureFilePermissions)
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// load reads every parseable line; corrupt lines are skipped.
func (f *FileStore) load() ([]domain.HistoryRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var records []domain.HistoryRecord
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var rec domain.HistoryRecord
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

var _ ports.HistoryRepository = (*FileStore)(nil)
