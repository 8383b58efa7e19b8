package domain

import "context"

// QueryRequest is one natural-language instruction from the CLI.
type QueryRequest struct {
	Context         context.Context
	Instruction     string
	CopyToClipboard bool
	ShowPrompt      bool
	Verbose         bool
}

// QueryResponse is the canonical response propagated back to the CLI.
type QueryResponse struct {
	RunID       string
	Instruction string
	Dialect     DialectName
	Prompt      string
	RawResponse string
	Command     string
	// Verbatim is set when no fence or command-looking line was found and
	// Command holds the whole response text.
	Verbatim   bool
	ParseError ParseError
	Risk       RiskAssessment
	Outcome    Outcome
	FromCache  bool
}

// Runnable reports whether a command was extracted at all.
func (r QueryResponse) Runnable() bool {
	return r.Command != "" && r.ParseError == ""
}
