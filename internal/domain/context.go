package domain

import "strings"

// ContextBlock is one labeled section of the working-directory snapshot.
type ContextBlock struct {
	Label string
	Body  string
}

// Context is the ordered snapshot injected into a prompt. Built fresh per instruction.
type Context struct {
	WorkingDir string
	Blocks     []ContextBlock
}

// Add appends a block, keeping insertion order.
func (c *Context) Add(label, body string) {
	c.Blocks = append(c.Blocks, ContextBlock{Label: label, Body: body})
}

// Block returns the first block with the given label.
func (c Context) Block(label string) (ContextBlock, bool) {
	for _, block := range c.Blocks {
		if block.Label == label {
			return block, true
		}
	}
	return ContextBlock{}, false
}

// Render formats the blocks as "Label:\nBody" sections separated by blank lines.
func (c Context) Render() string {
	var b strings.Builder
	for i, block := range c.Blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(block.Label)
		b.WriteString(":\n")
		body := strings.TrimRight(block.Body, "\n")
		if body != "" {
			b.WriteString(body)
			b.WriteString("\n")
		}
	}
	return b.String()
}
