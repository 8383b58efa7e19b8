package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/ganpi-go/internal/domain"
)

type answerPrompter struct{ answer string }

func (p answerPrompter) Ask(domain.RiskAssessment) (string, error) { return p.answer, nil }

func buildOffline(t *testing.T) *Container {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("GANPI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GANPI_MODEL", "")

	c, err := BuildContainer(context.Background(), Options{
		ConfigPath: filepath.Join(home, "config.yaml"),
		Dialect:    "posix",
		Offline:    true,
		AppDir:     filepath.Join(home, ".ganpi"),
		Stdin:      strings.NewReader(""),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestBuildContainerOffline(t *testing.T) {
	c := buildOffline(t)
	c.Confirmer.Prompter = answerPrompter{answer: "n"}

	assert.Equal(t, domain.DialectPOSIX, c.Dialect.Name())
	assert.False(t, c.QueryService.KeyConfigured)
	assert.NotNil(t, c.QueryService.History, "history is enabled by default")
	assert.Nil(t, c.QueryService.Cache, "cache is opt-in")

	resp, err := c.QueryService.Run(domain.QueryRequest{
		Context:     context.Background(),
		Instruction: "check disk space",
	})
	require.NoError(t, err)
	assert.Equal(t, "df -h", resp.Command)
	assert.Equal(t, domain.TierSafe, resp.Risk.Tier)
	assert.Equal(t, domain.OutcomeCancelled, resp.Outcome.Kind)

	records, err := c.HistoryStore.Records(0, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "df -h", records[0].Command)
}

func TestBuildContainerDefaultTables(t *testing.T) {
	c := buildOffline(t)

	assessment := c.Classifier.Evaluate("rm -rf /")
	assert.Equal(t, domain.TierForbidden, assessment.Tier)
}

func TestBuildContainerRejectsUnknownDialect(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	_, err := BuildContainer(context.Background(), Options{
		ConfigPath: filepath.Join(home, "config.yaml"),
		Dialect:    "fish",
		AppDir:     home,
	})
	assert.Error(t, err)
}
