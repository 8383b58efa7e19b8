package ai

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/infrastructure/dialect"
	"github.com/doeshing/ganpi-go/internal/ports"
)

// keyPath is the nested key sequence leading to candidates[0].content.parts[0].text.
var keyPath = []struct {
	key    string
	reason domain.ParseError
}{
	{key: `"candidates"`, reason: domain.ParseNoCandidates},
	{key: `"content"`, reason: domain.ParseNoContent},
	{key: `"parts"`, reason: domain.ParseNoParts},
	{key: `"text"`, reason: domain.ParseNoText},
}

// ParserOption customizes a Parser.
type ParserOption func(*Parser)

// WithUTF8Escapes writes every non-ASCII \uXXXX escape as UTF-8.
func WithUTF8Escapes() ParserOption {
	return func(p *Parser) {
		p.utf8Escapes = true
	}
}

// Parser pulls one command out of a raw generateContent response without
// requiring the response to be valid JSON.
type Parser struct {
	dialect     dialect.Dialect
	utf8Escapes bool
}

// NewParser binds a parser to a dialect.
func NewParser(d dialect.Dialect, opts ...ParserOption) *Parser {
	p := &Parser{dialect: d}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseResponse parses raw with the default options.
func ParseResponse(raw string, d dialect.Dialect) domain.Extraction {
	return NewParser(d).Parse(raw)
}

// Parse implements ports.ResponseParser. It never panics and never returns both
// a command and a reason.
func (p *Parser) Parse(raw string) domain.Extraction {
	escaped, reason := ExtractText(raw)
	if reason != "" {
		return domain.Extraction{Reason: reason}
	}

	text := decodeEscapes(escaped, p.utf8Escapes)
	command, verbatim := p.pick(text)
	if command == "" {
		return domain.Extraction{Text: text, Reason: domain.ParseEmpty}
	}
	return domain.Extraction{Command: command, Text: text, Verbatim: verbatim}
}

// ExtractText locates the first text value under candidates/content/parts and
// returns it still escaped.
func ExtractText(raw string) (string, domain.ParseError) {
	pos := 0
	for _, stage := range keyPath {
		idx := strings.Index(raw[pos:], stage.key)
		if idx < 0 {
			return "", stage.reason
		}
		pos += idx + len(stage.key)
	}

	for pos < len(raw) && isValueSeparator(raw[pos]) {
		pos++
	}
	if pos >= len(raw) || raw[pos] != '"' {
		return "", domain.ParseMalformed
	}

	start := pos + 1
	escaped := false
	for i := start; i < len(raw); i++ {
		switch {
		case escaped:
			escaped = false
		case raw[i] == '\\':
			escaped = true
		case raw[i] == '"':
			return raw[start:i], ""
		}
	}
	return "", domain.ParseMalformed
}

func isValueSeparator(c byte) bool {
	return c == ':' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// pick chooses the command from unescaped text: closed fenced block, then the
// first command-looking line, then the whole text. A fence without its closing
// marker is ignored.
func (p *Parser) pick(text string) (string, bool) {
	fence := dialect.Fence(p.dialect)
	if idx := strings.Index(text, fence); idx >= 0 {
		body := text[idx+len(fence):]
		if end := strings.Index(body, "```"); end >= 0 {
			return domain.NormalizeCommand(body[:end]), false
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "$") {
			if command := domain.NormalizeCommand(line); command != "" {
				return command, false
			}
			continue
		}
		if p.startsWithVerb(line) || startsLower(line) {
			return line, false
		}
	}

	return domain.NormalizeCommand(text), true
}

func (p *Parser) startsWithVerb(line string) bool {
	lowered := strings.ToLower(line)
	for _, verb := range p.dialect.CommandVerbs() {
		if lowered == verb || strings.HasPrefix(lowered, verb+" ") {
			return true
		}
	}
	return false
}

func startsLower(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return unicode.IsLower(r)
}

var _ ports.ResponseParser = (*Parser)(nil)
