package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/ganpi-go/internal/domain"
)

func TestFileCache_SetGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "responses")
	c := NewFileCache(dir, time.Hour, 10)

	_, ok, err := c.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	entry := domain.CacheEntry{Key: "abc", Model: "gemini-2.5-flash", Response: `{"candidates":[]}`}
	require.NoError(t, c.Set(entry))

	got, ok, err := c.Get("abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry.Response, got.Response)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, dir, c.Dir())
}

func TestFileCache_EmptyKeyIgnored(t *testing.T) {
	c := NewFileCache(t.TempDir(), time.Hour, 10)
	require.NoError(t, c.Set(domain.CacheEntry{Response: "x"}))
	_, ok, err := c.Get("")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCache_Expiry(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewFileCache(dir, time.Hour, 10).WithClock(func() time.Time { return now })

	require.NoError(t, c.Set(domain.CacheEntry{Key: "k", Response: "r", CreatedAt: now.Add(-2 * time.Hour)}))

	_, ok, err := c.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
	_, statErr := os.Stat(filepath.Join(dir, "k.json"))
	assert.True(t, os.IsNotExist(statErr), "expired entry should be removed")
}

func TestFileCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o600))
	c := NewFileCache(dir, time.Hour, 10)
	_, ok, err := c.Get("bad")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCache_Eviction(t *testing.T) {
	dir := t.TempDir()
	c := NewFileCache(dir, 0, 2)
	base := time.Now().Add(-time.Hour)

	for i, key := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(domain.CacheEntry{Key: key, Response: key}))
		mod := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(filepath.Join(dir, key+".json"), mod, mod))
	}
	require.NoError(t, c.Set(domain.CacheEntry{Key: "d", Response: "d"}))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
	_, ok, _ := c.Get("d")
	assert.True(t, ok)
}

func TestFileCache_EntriesAndClear(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	c := NewFileCache(dir, time.Hour, 0)
	require.NoError(t, c.Set(domain.CacheEntry{Key: "old", CreatedAt: now.Add(-time.Minute)}))
	require.NoError(t, c.Set(domain.CacheEntry{Key: "new", CreatedAt: now}))

	entries, err := c.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "new", entries[0].Key)

	require.NoError(t, c.Clear())
	entries, err = c.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
