// Package dialect holds the two interchangeable target-shell strategies.
//
// A dialect is selected once at start-up and then drives prompt wording, fenced
// block extraction, the default classifier tables and process invocation, so the
// rest of the pipeline never branches on the operating system.
package dialect

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/doeshing/ganpi-go/internal/domain"
)

// Dialect is a target shell command syntax family.
type Dialect interface {
	Name() domain.DialectName
	// FenceTag is the language hint after ``` in model output.
	FenceTag() string
	// Label names the shell in prompts ("shell", "Windows shell").
	Label() string
	// PromptRules are dialect-specific rule lines, including the
	// non-interactive flags to prefer for destructive commands.
	PromptRules() []string
	// CommandVerbs is the allow-list used when the response has no fence.
	CommandVerbs() []string
	// DefaultRules are the classifier tables used when no rules file overrides them.
	DefaultRules() domain.RuleTables
	// Invocation returns the program and arguments that run command.
	Invocation(command string) (string, []string)
}

// Fence returns the opening fence marker, e.g. "```bash".
func Fence(d Dialect) string {
	return "```" + d.FenceTag()
}

// Resolve maps a configured name to a dialect. "auto" and "" pick by host OS.
func Resolve(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Detect(runtime.GOOS), nil
	case string(domain.DialectPOSIX), "bash", "sh", "unix":
		return POSIX(), nil
	case string(domain.DialectWindows), "cmd":
		return Windows(), nil
	default:
		return nil, fmt.Errorf("unknown dialect %q (want auto, posix or windows)", name)
	}
}

// Detect picks the dialect for a GOOS value.
func Detect(goos string) Dialect {
	if goos == "windows" {
		return Windows()
	}
	return POSIX()
}
