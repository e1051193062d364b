package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/nao1215/lineup/internal/model"
)

// Markdown renders "markdown" items for the terminal.
type Markdown struct {
	width int
	style string

	once     sync.Once
	mu       sync.Mutex
	renderer *glamour.TermRenderer
	err      error
}

// NewMarkdown creates a markdown renderer that adapts to the terminal
// background and wraps at width.
func NewMarkdown(width int) *Markdown {
	return &Markdown{width: width}
}

// NewPlainMarkdown creates a markdown renderer without color escapes.
func NewPlainMarkdown(width int) *Markdown {
	return &Markdown{width: width, style: "notty"}
}

// Render renders the item text.
func (m *Markdown) Render(item model.Item) (string, error) {
	m.once.Do(func() {
		opts := []glamour.TermRendererOption{glamour.WithWordWrap(m.width)}
		if m.style != "" {
			opts = append(opts, glamour.WithStandardStyle(m.style))
		} else {
			opts = append(opts, glamour.WithAutoStyle())
		}
		m.renderer, m.err = glamour.NewTermRenderer(opts...)
	})
	if m.err != nil {
		return "", m.err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out, err := m.renderer.Render(item.Text)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
