package contextcollector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/ganpi-go/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestGatherIncludesBaseBlocks(t *testing.T) {
	wd := t.TempDir()
	writeFile(t, filepath.Join(wd, "notes.txt"), "hello")
	writeFile(t, filepath.Join(wd, "src", "main.go"), "package main")
	writeFile(t, filepath.Join(wd, ".hidden"), "x")

	g := NewGatherer(domain.ContextSettings{}, WithWorkDir(wd), WithHomeDir(t.TempDir()))
	snapshot := g.Gather(context.Background(), "list files")

	assert.Equal(t, wd, snapshot.WorkingDir)
	labels := make([]string, 0, len(snapshot.Blocks))
	for _, block := range snapshot.Blocks {
		labels = append(labels, block.Label)
	}
	assert.Equal(t, []string{LabelCurrentDir, LabelListing, LabelTree, LabelFiles}, labels)

	listing, _ := snapshot.Block(LabelListing)
	assert.Equal(t, "notes.txt\nsrc/", listing.Body)

	tree, _ := snapshot.Block(LabelTree)
	assert.Equal(t, "notes.txt\nsrc/\n  main.go", tree.Body)

	files, _ := snapshot.Block(LabelFiles)
	assert.Equal(t, "notes.txt (5 B)", files.Body)
	assert.NotContains(t, snapshot.Render(), ".hidden")
}

func TestGatherTreeIsCapped(t *testing.T) {
	wd := t.TempDir()
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			writeFile(t, filepath.Join(wd, fmt.Sprintf("d%02d", i), fmt.Sprintf("f%02d", j)), "")
		}
	}

	g := NewGatherer(domain.ContextSettings{}, WithWorkDir(wd), WithHomeDir(t.TempDir()))
	tree, ok := g.Gather(context.Background(), "").Block(LabelTree)
	require.True(t, ok)

	lines := strings.Split(tree.Body, "\n")
	assert.Len(t, lines, domain.DefaultTreeLimit)
	assert.Equal(t, "d00/", lines[0])
	assert.Equal(t, "  f00", lines[1])
}

func TestGatherListingIsCapped(t *testing.T) {
	wd := t.TempDir()
	for i := 0; i < 5; i++ {
		writeFile(t, filepath.Join(wd, fmt.Sprintf("file%d", i)), "")
	}

	g := NewGatherer(domain.ContextSettings{ListingLimit: 3, FilesLimit: 2}, WithWorkDir(wd), WithHomeDir(t.TempDir()))
	snapshot := g.Gather(context.Background(), "")

	listing, _ := snapshot.Block(LabelListing)
	assert.Equal(t, "file0\nfile1\nfile2\n... 2 more", listing.Body)
	files, _ := snapshot.Block(LabelFiles)
	assert.Equal(t, "file0 (0 B)\nfile1 (0 B)", files.Body)
}

func TestGatherMentionedDirectories(t *testing.T) {
	wd := t.TempDir()
	home := t.TempDir()
	writeFile(t, filepath.Join(home, "Downloads", "report.pdf"), "%PDF")
	writeFile(t, filepath.Join(wd, "backup", "db.sql"), "")
	require.NoError(t, os.MkdirAll(filepath.Join(wd, "dir1"), 0o755))

	g := NewGatherer(domain.ContextSettings{}, WithWorkDir(wd), WithHomeDir(home))
	snapshot := g.Gather(context.Background(), "Copy PDFs from DOWNLOADS into backup, then clean dir1 and my Desktop; downloads again")

	var mentions []domain.ContextBlock
	for _, block := range snapshot.Blocks[4:] {
		mentions = append(mentions, block)
	}
	require.Len(t, mentions, 4)

	assert.Equal(t, `Directory "dir1"`, mentions[0].Label)
	assert.Equal(t, "dir1: does not exist or is empty", mentions[0].Body)

	assert.Equal(t, `Directory "download"`, mentions[1].Label)
	assert.Equal(t, filepath.Join(home, "Downloads")+"\nreport.pdf", mentions[1].Body)

	assert.Equal(t, `Directory "backup"`, mentions[2].Label)
	assert.Equal(t, filepath.Join(wd, "backup")+"\ndb.sql", mentions[2].Body)

	assert.Equal(t, `Directory "desktop"`, mentions[3].Label)
	assert.Contains(t, mentions[3].Body, "does not exist or is empty")
}

func TestGatherUnreadableWorkDirDegrades(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")

	g := NewGatherer(domain.ContextSettings{}, WithWorkDir(missing), WithHomeDir(t.TempDir()))
	snapshot := g.Gather(context.Background(), "show temp")

	require.Len(t, snapshot.Blocks, 5)
	listing, _ := snapshot.Block(LabelListing)
	assert.Contains(t, listing.Body, "could not be read")
	assert.Equal(t, "temp: does not exist or is empty", snapshot.Blocks[4].Body)
}

func TestGatherWithoutWorkDirStillListsMentions(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, "Downloads", "report.pdf"), "%PDF")

	g := NewGatherer(domain.ContextSettings{}, WithHomeDir(home))
	g.workDir = func() (string, error) { return "", os.ErrNotExist }
	snapshot := g.Gather(context.Background(), "open my downloads")

	require.Len(t, snapshot.Blocks, 5)
	assert.Empty(t, snapshot.WorkingDir)
	for _, label := range []string{LabelCurrentDir, LabelListing, LabelTree, LabelFiles} {
		block, ok := snapshot.Block(label)
		require.True(t, ok, label)
		assert.Contains(t, block.Body, "unknown", label)
	}
	assert.Equal(t, filepath.Join(home, "Downloads")+"\nreport.pdf", snapshot.Blocks[4].Body)
}

func TestGatherIsFreshPerCall(t *testing.T) {
	wd := t.TempDir()
	g := NewGatherer(domain.ContextSettings{}, WithWorkDir(wd), WithHomeDir(t.TempDir()))

	before := g.Gather(context.Background(), "")
	writeFile(t, filepath.Join(wd, "new.txt"), "")
	after := g.Gather(context.Background(), "")

	assert.NotEqual(t, before.Render(), after.Render())
}

func TestCustomVocabulary(t *testing.T) {
	wd := t.TempDir()
	writeFile(t, filepath.Join(wd, "logs", "app.log"), "")

	g := NewGatherer(domain.ContextSettings{},
		WithWorkDir(wd),
		WithHomeDir(t.TempDir()),
		WithVocabulary([]Term{{Keyword: "log", Names: []string{"logs"}}}),
	)
	snapshot := g.Gather(context.Background(), "tail the logs")

	block, ok := snapshot.Block(`Directory "log"`)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(wd, "logs")+"\napp.log", block.Body)
}
