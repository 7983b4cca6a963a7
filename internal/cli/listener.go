package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/fnkit/internal/domain"
	"github.com/aalvaropc/fnkit/internal/ports"
)

// consoleListener prints suites and case outcomes as they complete, with
// names right-aligned to the longest selected name.
type consoleListener struct {
	w          io.Writer
	theme      theme
	suiteWidth int
	caseWidth  int
}

var _ ports.ExecutionListener = (*consoleListener)(nil)

func newConsoleListener(w io.Writer) *consoleListener {
	return &consoleListener{w: w, theme: newTheme(lipgloss.NewRenderer(w))}
}

func (l *consoleListener) AboutToStart(plan domain.Plan) {
	for _, s := range plan.Suites {
		l.suiteWidth = max(l.suiteWidth, len(s.Name))
		for _, c := range s.Cases {
			l.caseWidth = max(l.caseWidth, len(c.Name))
		}
	}
}

func (l *consoleListener) SuiteStart(s domain.Suite) {
	fmt.Fprintf(l.w, "[%*s] %s\n", l.suiteWidth, s.Name, l.theme.Title.Render(s.Description))
}

func (l *consoleListener) CaseDone(r domain.CaseResult) {
	fmt.Fprintf(l.w, "  [%*s] %s %s", l.caseWidth, r.Name, l.theme.label(r.Outcome), r.Description)
	if r.Outcome != domain.OutcomePass && r.Message != "" {
		fmt.Fprintf(l.w, ": %s", l.theme.Subtitle.Render(r.Message))
	}
	fmt.Fprintln(l.w)
}
