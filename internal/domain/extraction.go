package domain

// Extraction is the parser's result: either a command or a parse-error tag, never both.
type Extraction struct {
	Command string
	// Text is the fully unescaped model text the command was taken from.
	Text   string
	Reason ParseError
	// Verbatim marks a command that is the whole response text because
	// neither a fence nor a command-looking line was found.
	Verbatim bool
}

// OK reports whether a usable command was extracted.
func (e Extraction) OK() bool {
	return e.Reason == "" && e.Command != ""
}
