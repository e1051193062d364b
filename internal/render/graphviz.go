package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/lineup/internal/model"
)

// Graphviz shows the DOT source of "graphviz" items in a frame.
// Layout is left to external tools.
type Graphviz struct {
	style lipgloss.Style
}

// NewGraphviz creates a graphviz renderer.
func NewGraphviz() *Graphviz {
	return &Graphviz{
		style: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Padding(0, 1),
	}
}

// Render frames the DOT source with a caption.
func (g *Graphviz) Render(item model.Item) (string, error) {
	source := strings.TrimSpace(item.Text)
	return g.style.Render("graphviz\n\n" + source), nil
}
