package terminal

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// #region renderer
// Renderer turns messages into styled terminal text.
type Renderer struct {
	input  lipgloss.Style
	output lipgloss.Style
	system lipgloss.Style
	acta   lipgloss.Style
	ai     lipgloss.Style
	header lipgloss.Style
	dim    lipgloss.Style
}

// NewRenderer builds the default palette.
func NewRenderer() *Renderer {
	return &Renderer{
		input: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#3730A3", Dark: "#A5B4FC"}).
			Bold(true),
		output: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1E293B", Dark: "#E2E8F0"}),
		system: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			PaddingLeft(1),
		acta: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFAA00"}).
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 1),
		ai: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6B21A8", Dark: "#D8B4FE"}),
		header: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#7E22CE", Dark: "#C084FC"}).
			Bold(true),
		dim: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
	}
}

// Render styles one message. level labels AI replies. Unknown kinds are an error.
func (r *Renderer) Render(m Message, level int) (string, error) {
	switch m.Kind {
	case KindInput:
		return r.input.Render("> " + m.Content), nil
	case KindOutput:
		out := r.output.Render(m.Content)
		if m.Command != "" {
			out = r.dim.Render("["+m.Command+"]") + "\n" + out
		}
		return out, nil
	case KindSystem:
		return r.system.Render(m.Content), nil
	case KindActa:
		return r.acta.Render(m.Content), nil
	case KindAI:
		head := r.header.Render(fmt.Sprintf("Testiateria (Nivel %d)", level))
		return head + "\n" + r.ai.Render(m.Content), nil
	}
	return "", fmt.Errorf("render: unknown message kind %q", m.Kind)
}

// Status renders the level and XP line shown under the prompt.
func (r *Renderer) Status(level, xp int) string {
	return r.dim.Render(fmt.Sprintf("Nivel Testiateria %d / 9999 · XP %d", level, xp))
}
// #endregion renderer
