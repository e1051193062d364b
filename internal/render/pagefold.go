package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/lineup/internal/model"
)

// Pagefold renders "pagefold" items as a horizontal rule with a label.
type Pagefold struct {
	width int
	style lipgloss.Style
}

// NewPagefold creates a pagefold renderer for the given line width.
func NewPagefold(width int) *Pagefold {
	return &Pagefold{
		width: width,
		style: lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
	}
}

// Render draws the rule.
func (p *Pagefold) Render(item model.Item) (string, error) {
	label := strings.TrimSpace(item.Text)
	if label == "" {
		return p.style.Render(strings.Repeat("─", p.width)), nil
	}

	label = " " + label + " "
	side := max((p.width-lipgloss.Width(label))/2, 2)
	return p.style.Render(strings.Repeat("─", side) + label + strings.Repeat("─", side)), nil
}
