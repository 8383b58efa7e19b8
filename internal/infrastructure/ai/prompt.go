package ai

import (
	"strings"
	"text/template"
	"unicode"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/infrastructure/dialect"
	"github.com/doeshing/ganpi-go/internal/ports"
)

var promptTemplate = template.Must(template.New("prompt").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`Context:
{{.Context}}
You are a command-line assistant that converts natural language requests into precise {{.Label}} commands.

IMPORTANT RULES:
{{range $i, $rule := .Rules}}{{inc $i}}. {{$rule}}
{{end}}
User request: {{.Instruction}}

{{.Title}} command:`))

type promptData struct {
	Context     string
	Label       string
	Title       string
	Rules       []string
	Instruction string
}

// PromptBuilder renders prompts for one dialect.
type PromptBuilder struct {
	dialect dialect.Dialect
}

// NewPromptBuilder binds a builder to a dialect.
func NewPromptBuilder(d dialect.Dialect) *PromptBuilder {
	return &PromptBuilder{dialect: d}
}

// Build implements ports.PromptBuilder.
func (b *PromptBuilder) Build(instruction string, c domain.Context) string {
	return BuildPrompt(instruction, c, b.dialect)
}

// BuildPrompt renders the fixed rule template, the context and the instruction.
// It is a pure function of its arguments.
func BuildPrompt(instruction string, c domain.Context, d dialect.Dialect) string {
	label := d.Label()
	rules := []string{
		"ONLY respond with the " + label + " command needed to fulfill the request",
		"Do NOT include explanations or additional text",
	}
	rules = append(rules, d.PromptRules()...)
	rules = append(rules,
		"For file operations, use relative paths when possible",
		"Format your response as: "+dialect.Fence(d)+"\n<command>\n```",
	)

	var b strings.Builder
	// Execute only fails on writer errors, and strings.Builder never returns one.
	_ = promptTemplate.Execute(&b, promptData{
		Context:     c.Render(),
		Label:       label,
		Title:       capitalize(label),
		Rules:       rules,
		Instruction: strings.TrimSpace(instruction),
	})
	return b.String()
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

var _ ports.PromptBuilder = (*PromptBuilder)(nil)
