package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/fnkit/internal/domain"
)

type theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Pass     lipgloss.Style
	Fail     lipgloss.Style
	Warn     lipgloss.Style
	Error    lipgloss.Style
}

// newTheme binds styles to r so colours follow the output's capabilities.
func newTheme(r *lipgloss.Renderer) theme {
	return theme{
		Title:    r.NewStyle().Bold(true),
		Subtitle: r.NewStyle().Faint(true),
		Pass:     r.NewStyle().Foreground(lipgloss.Color("10")),
		Fail:     r.NewStyle().Foreground(lipgloss.Color("9")),
		Warn:     r.NewStyle().Foreground(lipgloss.Color("11")),
		Error:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// label renders an outcome as a five-column tag.
func (t theme) label(o domain.Outcome) string {
	switch o {
	case domain.OutcomePass:
		return t.Pass.Render(" PASS")
	case domain.OutcomeHardFailure:
		return t.Fail.Render(" FAIL")
	case domain.OutcomeOptionalFailure:
		return t.Warn.Render(" WARN")
	default:
		return t.Error.Render("ERROR")
	}
}
