package contextcollector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/ports"
)

// Block labels, in the order Gather emits them.
const (
	LabelCurrentDir = "Current directory"
	LabelListing    = "Top-level entries"
	LabelTree       = "Directory tree (depth 2)"
	LabelFiles      = "Files"
)

// Term is one recognized directory noun.
// Keyword is matched as a substring of the lower-cased instruction; Names are
// tried in order under the working directory, then under the home directory.
type Term struct {
	Keyword string
	Names   []string
}

// DefaultVocabulary is the fixed set of directory nouns looked up in instructions.
var DefaultVocabulary = []Term{
	{Keyword: "test", Names: []string{"test", "tests"}},
	{Keyword: "dir1", Names: []string{"dir1"}},
	{Keyword: "dir2", Names: []string{"dir2"}},
	{Keyword: "download", Names: []string{"Downloads", "downloads", "Download", "download"}},
	{Keyword: "document", Names: []string{"Documents", "documents", "Document", "document"}},
	{Keyword: "backup", Names: []string{"backup", "backups", "Backup"}},
	{Keyword: "temp", Names: []string{"temp", "Temp", "tmp"}},
	{Keyword: "home", Names: []string{"."}},
	{Keyword: "desktop", Names: []string{"Desktop", "desktop"}},
}

// Gatherer implements ports.ContextGatherer over the local filesystem.
type Gatherer struct {
	limits     domain.ContextSettings
	vocabulary []Term
	workDir    func() (string, error)
	homeDir    func() (string, error)
	logger     ports.Logger
}

// Option customizes a Gatherer.
type Option func(*Gatherer)

// WithWorkDir pins the working directory instead of os.Getwd.
func WithWorkDir(dir string) Option {
	return func(g *Gatherer) {
		g.workDir = func() (string, error) { return dir, nil }
	}
}

// WithHomeDir pins the home directory instead of os.UserHomeDir.
func WithHomeDir(dir string) Option {
	return func(g *Gatherer) {
		g.homeDir = func() (string, error) { return dir, nil }
	}
}

// WithVocabulary replaces DefaultVocabulary.
func WithVocabulary(terms []Term) Option {
	return func(g *Gatherer) {
		g.vocabulary = terms
	}
}

// WithLogger attaches a logger for degraded listings.
func WithLogger(logger ports.Logger) Option {
	return func(g *Gatherer) {
		g.logger = logger
	}
}

// NewGatherer builds a gatherer. Zero limits are replaced by the defaults.
func NewGatherer(limits domain.ContextSettings, opts ...Option) *Gatherer {
	cfg := domain.Config{Context: limits}
	g := &Gatherer{
		limits:     cfg.GetContextLimits(),
		vocabulary: DefaultVocabulary,
		workDir:    os.Getwd,
		homeDir:    os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Gather implements ports.ContextGatherer. It never fails: unreadable paths become notes.
func (g *Gatherer) Gather(ctx context.Context, instruction string) domain.Context {
	var snapshot domain.Context

	wd, err := g.workDir()
	if err != nil {
		g.debug("working directory unavailable", err)
		wd = ""
		note := fmt.Sprintf("unknown (%v)", err)
		snapshot.Add(LabelCurrentDir, note)
		snapshot.Add(LabelListing, note)
		snapshot.Add(LabelTree, note)
		snapshot.Add(LabelFiles, note)
	} else {
		snapshot.WorkingDir = wd
		snapshot.Add(LabelCurrentDir, wd)
		g.addListings(&snapshot, wd)
	}

	for _, term := range g.mentioned(instruction) {
		if ctx.Err() != nil {
			break
		}
		snapshot.Add(mentionLabel(term), g.mentionBody(wd, term))
	}
	return snapshot
}

func (g *Gatherer) addListings(snapshot *domain.Context, wd string) {
	entries, err := readVisible(wd)
	if err != nil {
		g.debug("listing failed", err)
		note := fmt.Sprintf("could not be read (%v)", err)
		snapshot.Add(LabelListing, note)
		snapshot.Add(LabelTree, note)
		snapshot.Add(LabelFiles, note)
		return
	}
	snapshot.Add(LabelListing, renderListing(entries, g.limits.ListingLimit))
	snapshot.Add(LabelTree, g.tree(wd, entries))
	snapshot.Add(LabelFiles, renderFiles(entries, g.limits.FilesLimit))
}

// mentioned returns the distinct vocabulary terms found in instruction, in vocabulary order.
func (g *Gatherer) mentioned(instruction string) []Term {
	lowered := strings.ToLower(instruction)
	var found []Term
	seen := map[string]bool{}
	for _, term := range g.vocabulary {
		keyword := strings.ToLower(term.Keyword)
		if keyword == "" || seen[keyword] || !strings.Contains(lowered, keyword) {
			continue
		}
		seen[keyword] = true
		found = append(found, term)
	}
	return found
}

func (g *Gatherer) mentionBody(wd string, term Term) string {
	for _, dir := range g.candidates(wd, term) {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		entries, err := readVisible(dir)
		if err != nil {
			g.debug("mentioned directory unreadable", err)
			continue
		}
		if len(entries) == 0 {
			continue
		}
		return dir + "\n" + renderListing(entries, g.limits.MentionLimit)
	}
	return fmt.Sprintf("%s: does not exist or is empty", term.Keyword)
}

func (g *Gatherer) candidates(wd string, term Term) []string {
	home, err := g.homeDir()
	if err != nil {
		home = ""
	}
	var dirs []string
	for _, name := range term.Names {
		if name == "." {
			if home != "" {
				dirs = append(dirs, home)
			}
			continue
		}
		if wd != "" {
			dirs = append(dirs, filepath.Join(wd, name))
		}
	}
	if home == "" {
		return dirs
	}
	for _, name := range term.Names {
		if name != "." {
			dirs = append(dirs, filepath.Join(home, name))
		}
	}
	return dirs
}

// tree walks two levels below root and stops at TreeLimit lines.
func (g *Gatherer) tree(root string, entries []os.DirEntry) string {
	var lines []string
	limit := g.limits.TreeLimit
	for _, entry := range entries {
		if len(lines) >= limit {
			break
		}
		if !entry.IsDir() {
			lines = append(lines, entry.Name())
			continue
		}
		lines = append(lines, entry.Name()+"/")
		children, err := readVisible(filepath.Join(root, entry.Name()))
		if err != nil {
			continue
		}
		for _, child := range children {
			if len(lines) >= limit {
				break
			}
			lines = append(lines, "  "+displayName(child))
		}
	}
	return strings.Join(lines, "\n")
}

func (g *Gatherer) debug(msg string, err error) {
	if g.logger != nil {
		g.logger.Debug(msg, map[string]interface{}{"error": err.Error()})
	}
}

func mentionLabel(term Term) string {
	return fmt.Sprintf("Directory %q", term.Keyword)
}

// readVisible lists dir sorted by name, skipping dot entries.
func readVisible(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	visible := entries[:0]
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		visible = append(visible, entry)
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].Name() < visible[j].Name() })
	return visible, nil
}

func renderListing(entries []os.DirEntry, limit int) string {
	if len(entries) == 0 {
		return "(empty)"
	}
	var lines []string
	for i, entry := range entries {
		if i >= limit {
			lines = append(lines, fmt.Sprintf("... %d more", len(entries)-limit))
			break
		}
		lines = append(lines, displayName(entry))
	}
	return strings.Join(lines, "\n")
}

func renderFiles(entries []os.DirEntry, limit int) string {
	var lines []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if len(lines) >= limit {
			break
		}
		info, err := entry.Info()
		if err != nil {
			lines = append(lines, entry.Name())
			continue
		}
		lines = append(lines, fmt.Sprintf("%s (%s)", entry.Name(), humanize.Bytes(uint64(info.Size()))))
	}
	if len(lines) == 0 {
		return "(none)"
	}
	return strings.Join(lines, "\n")
}

func displayName(entry os.DirEntry) string {
	if entry.IsDir() {
		return entry.Name() + "/"
	}
	return entry.Name()
}

var _ ports.ContextGatherer = (*Gatherer)(nil)
