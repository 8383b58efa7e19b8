package helpers

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/ports"
)

const summaryWrapWidth = 100

// Renderer prints pipeline progress and results. Colour is only used when the
// output is a terminal.
type Renderer struct {
	out   io.Writer
	color bool
	now   func() time.Time

	badges  map[domain.RiskTier]lipgloss.Style
	heading lipgloss.Style
	command lipgloss.Style
	muted   lipgloss.Style
	failure lipgloss.Style
	success lipgloss.Style
}

// NewRenderer builds a renderer for out.
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return newRenderer(out, IsTerminal(out))
}

func newRenderer(out io.Writer, color bool) *Renderer {
	r := &Renderer{out: out, color: color, now: time.Now}
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	r.badges = map[domain.RiskTier]lipgloss.Style{
		domain.TierSafe:      badge.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42")),
		domain.TierDangerous: badge.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")),
		domain.TierForbidden: badge.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")),
	}
	r.heading = lipgloss.NewStyle().Bold(true)
	r.command = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	r.muted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	r.failure = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	r.success = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	return r
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Badge renders the tier label, e.g. "[DANGEROUS]".
func (r *Renderer) Badge(tier domain.RiskTier) string {
	label := strings.ToUpper(tier.String())
	if !r.color {
		return "[" + label + "]"
	}
	return r.badges[tier].Render(label)
}

// Prompt implements ports.Reporter.
func (r *Renderer) Prompt(prompt string) {
	fmt.Fprintln(r.out, r.style(r.heading, "Prompt sent to Gemini:"))
	fmt.Fprintln(r.out, r.style(r.muted, prompt))
	fmt.Fprintln(r.out)
}

// Response implements ports.Reporter.
func (r *Renderer) Response(size int, preview string) {
	fmt.Fprintf(r.out, "%s %d bytes\n", r.style(r.heading, "Response:"), size)
	fmt.Fprintln(r.out, r.style(r.muted, preview))
	fmt.Fprintln(r.out)
}

// Processing announces an instruction.
func (r *Renderer) Processing(instruction string) {
	fmt.Fprintf(r.out, "\nProcessing: %q\n", instruction)
}

// Proposal shows the command awaiting confirmation.
func (r *Renderer) Proposal(risk domain.RiskAssessment) {
	fmt.Fprintf(r.out, "\n%s %s\n", r.style(r.heading, "Command to execute:"), r.Badge(risk.Tier))
	fmt.Fprintf(r.out, "   %s\n", r.style(r.command, risk.Command))
	if len(risk.Matched) > 0 {
		fmt.Fprintf(r.out, "   %s\n", r.style(r.muted, "matched: "+strings.Join(risk.Matched, ", ")))
	}
	if len(risk.Downgraded) > 0 {
		fmt.Fprintf(r.out, "   %s\n", r.style(r.muted, "allowed with quiet flag: "+strings.Join(risk.Downgraded, ", ")))
	}
}

// Result prints the terminal state of one run.
func (r *Renderer) Result(resp domain.QueryResponse) {
	if resp.FromCache {
		fmt.Fprintln(r.out, r.style(r.muted, "(response served from cache)"))
	}
	switch resp.Outcome.Kind {
	case domain.OutcomeParseFailed:
		fmt.Fprintf(r.out, "%s (%s). Please try rephrasing.\n",
			r.style(r.failure, "Error: "+domain.ErrNoSafeCommand.Error()), resp.ParseError)
	case domain.OutcomeClassifierVoid:
		r.Proposal(resp.Risk)
		fmt.Fprintf(r.out, "\n%s\n", r.style(r.failure, "Blocked: this command matches a forbidden pattern and will not run."))
	case domain.OutcomeCancelled:
		fmt.Fprintln(r.out, "Command cancelled.")
	case domain.OutcomeExecuted:
		r.execution(resp.Outcome.Execution)
	}
}

func (r *Renderer) execution(exec *domain.ExecutionOutcome) {
	if exec == nil {
		return
	}
	if exec.Success {
		fmt.Fprintf(r.out, "\n%s\n", r.style(r.success, "Command executed successfully."))
	} else {
		fmt.Fprintf(r.out, "\n%s\n", r.style(r.failure, fmt.Sprintf("Command failed with exit status %d.", exec.ExitStatus)))
	}
	if exec.Output != "" {
		fmt.Fprintf(r.out, "\n%s\n%s", r.style(r.heading, "Output:"), exec.Output)
		if !strings.HasSuffix(exec.Output, "\n") {
			fmt.Fprintln(r.out)
		}
	}
}

// Markdown renders md with glamour, falling back to the raw text.
func (r *Renderer) Markdown(md string) {
	style := glamour.WithStandardStyle("notty")
	if r.color {
		style = glamour.WithAutoStyle()
	}
	tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(summaryWrapWidth))
	if err == nil {
		if out, err := tr.Render(md); err == nil {
			fmt.Fprint(r.out, out)
			return
		}
	}
	fmt.Fprintln(r.out, md)
}

// Doctor prints one line per health check.
func (r *Renderer) Doctor(report domain.HealthReport) {
	for _, check := range report.Checks {
		status := strings.ToUpper(string(check.Status))
		switch check.Status {
		case domain.HealthOK:
			status = r.style(r.success, status)
		case domain.HealthError:
			status = r.style(r.failure, status)
		}
		fmt.Fprintf(r.out, "[%s] %s - %s\n", status, check.Name, check.Details)
	}
}

// History prints records as "age | tier | outcome | command".
func (r *Renderer) History(records []domain.HistoryRecord) {
	now := r.now()
	for _, rec := range records {
		age := humanize.RelTime(rec.Timestamp, now, "ago", "from now")
		fmt.Fprintf(r.out, "%s | %s | %s | %s\n",
			r.style(r.muted, age), rec.Tier, rec.Outcome, rec.Command)
	}
}

// Cache prints cached responses with their age and size.
func (r *Renderer) Cache(entries []domain.CacheEntry) {
	now := r.now()
	for _, entry := range entries {
		fmt.Fprintf(r.out, "%s | %s | %s | %s\n",
			entry.Key[:min(12, len(entry.Key))],
			entry.Model,
			humanize.RelTime(entry.CreatedAt, now, "ago", "from now"),
			humanize.Bytes(uint64(len(entry.Response))))
	}
}

var _ ports.Reporter = (*Renderer)(nil)
