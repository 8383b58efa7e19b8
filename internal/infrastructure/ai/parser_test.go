package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/infrastructure/dialect"
)

// wrap builds a generateContent response around an already escaped text value.
func wrap(escapedText string) string {
	return `{"candidates": [{"content": {"parts": [{"text": "` + escapedText + `"}], "role": "model"}, "finishReason": "STOP"}]}`
}

func TestExtractTextStages(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		reason domain.ParseError
	}{
		{name: "missing candidates", raw: `{"error": {"code": 400}}`, reason: domain.ParseNoCandidates},
		{name: "missing content", raw: `{"candidates": [{"finishReason": "SAFETY"}]}`, reason: domain.ParseNoContent},
		{name: "missing parts", raw: `{"candidates": [{"content": {"role": "model"}}]}`, reason: domain.ParseNoParts},
		{name: "missing text", raw: `{"candidates": [{"content": {"parts": [{}]}}]}`, reason: domain.ParseNoText},
		{name: "unterminated", raw: `{"candidates": [{"content": {"parts": [{"text": "ls -la`, reason: domain.ParseMalformed},
		{name: "value is not a string", raw: `{"candidates": [{"content": {"parts": [{"text": 42}]}}]}`, reason: domain.ParseMalformed},
		{name: "escaped quote does not terminate", raw: wrap(`echo \"hi\"`), want: `echo \"hi\"`},
		{name: "escaped backslash before quote terminates", raw: wrap(`dir C:\\`), want: `dir C:\\`},
		{name: "compact json", raw: `{"candidates":[{"content":{"parts":[{"text":"pwd"}]}}]}`, want: "pwd"},
		{name: "keys out of order", raw: `{"text": "x", "parts": [], "content": {}, "candidates": []}`, reason: domain.ParseNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := ExtractText(tt.raw)
			assert.Equal(t, tt.reason, reason)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseScenarioMissingCandidates(t *testing.T) {
	got := ParseResponse(`{"promptFeedback": {"blockReason": "OTHER"}}`, dialect.POSIX())
	assert.Equal(t, domain.ParseNoCandidates, got.Reason)
	assert.Empty(t, got.Command)
	assert.False(t, got.OK())
}

func TestParseScenarioFencedBash(t *testing.T) {
	got := ParseResponse(wrap("```bash\\nls -la\\n```"), dialect.POSIX())
	require.True(t, got.OK())
	assert.Equal(t, "ls -la", got.Command)
	assert.False(t, got.Verbatim)
}

func TestParseFencedBlockIsTrimmedExactly(t *testing.T) {
	commands := []string{
		"ls -la",
		"find . -name '*.pdf' -exec zip pdfs.zip {} +",
		"tar -czf backup.tar.gz docs",
		"echo \"quoted\" | tr a-z A-Z",
	}
	for _, command := range commands {
		escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace("Here you go:\n```bash\n  " + command + " \t\n```\nDone.")
		got := ParseResponse(wrap(escaped), dialect.POSIX())
		assert.Equal(t, command, got.Command, "escaped=%s", escaped)
	}
}

func TestParseWindowsFence(t *testing.T) {
	raw := wrap("```cmd\\nrmdir /s /q build\\n```")
	assert.Equal(t, "rmdir /s /q build", ParseResponse(raw, dialect.Windows()).Command)

	// A bash fence is not the Windows marker; the first lowercase line wins instead.
	raw = wrap("```bash\\ndir /b\\n```")
	assert.Equal(t, "dir /b", ParseResponse(raw, dialect.Windows()).Command)
}

func TestParseUnterminatedFenceScansLines(t *testing.T) {
	got := ParseResponse(wrap("```bash\\ngrep -rn TODO ."), dialect.POSIX())
	assert.Equal(t, "grep -rn TODO .", got.Command)
	assert.False(t, got.Verbatim)

	got = ParseResponse(wrap("```bash\\nls -la\\nThis lists every file, hidden ones incl"), dialect.POSIX())
	assert.Equal(t, "ls -la", got.Command)
	assert.False(t, got.Verbatim)
}

func TestParseLineFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		dialect  dialect.Dialect
		text     string
		want     string
		verbatim bool
	}{
		{name: "dollar prompt", dialect: dialect.POSIX(), text: `Run this:\n$ du -sh *`, want: "du -sh *"},
		{name: "lowercase line", dialect: dialect.POSIX(), text: `Sure.\nwc -l *.go`, want: "wc -l *.go"},
		{name: "windows verb upper case", dialect: dialect.Windows(), text: `Command:\nDIR /S *.txt`, want: "DIR /S *.txt"},
		{name: "windows verb", dialect: dialect.Windows(), text: `Here you go:\nCOPY a.txt b.txt`, want: "COPY a.txt b.txt"},
		{name: "verb must be a whole word", dialect: dialect.Windows(), text: `Delete everything.`, want: "Delete everything.", verbatim: true},
		{name: "verbatim", dialect: dialect.POSIX(), text: `  I cannot help with that.  `, want: "I cannot help with that.", verbatim: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseResponse(wrap(tt.text), tt.dialect)
			assert.Equal(t, tt.want, got.Command)
			assert.Equal(t, tt.verbatim, got.Verbatim)
			assert.Empty(t, got.Reason)
		})
	}
}

func TestParseEmptyText(t *testing.T) {
	got := ParseResponse(wrap(`  \n `), dialect.POSIX())
	assert.Equal(t, domain.ParseEmpty, got.Reason)
	assert.Empty(t, got.Command)

	got = ParseResponse(wrap("```bash\\n\\n```"), dialect.POSIX())
	assert.Equal(t, domain.ParseEmpty, got.Reason)
}

func TestParseNeverLeavesPromptMarker(t *testing.T) {
	got := ParseResponse(wrap("```bash\\n$ ls\\n```"), dialect.POSIX())
	assert.Equal(t, "ls", got.Command)
}

func TestParseIsIdempotent(t *testing.T) {
	inputs := []string{
		wrap("```bash\\nls -la\\n```"),
		wrap(`caf\u00e9 \ud83d\ude00`),
		`{"candidates": [`,
		"",
	}
	p := NewParser(dialect.POSIX())
	for _, raw := range inputs {
		assert.Equal(t, p.Parse(raw), p.Parse(raw))
	}
}

func TestParseDecodesUnicodeEscapes(t *testing.T) {
	raw := wrap("```bash\\necho \\u003e out.txt\\n```")
	assert.Equal(t, "echo > out.txt", ParseResponse(raw, dialect.POSIX()).Command)

	raw = wrap(`echo caf\u00e9`)
	assert.Equal(t, "echo caf\xe9", ParseResponse(raw, dialect.POSIX()).Command)
	assert.Equal(t, "echo café", NewParser(dialect.POSIX(), WithUTF8Escapes()).Parse(raw).Command)
}
