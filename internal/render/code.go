package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/nao1215/lineup/internal/model"
)

const (
	defaultCodeFormatter = "terminal256"
	defaultCodeStyle     = "monokai"
)

// Code renders "code" items with syntax highlighting.
// The lexer comes from the item's "language" field and is guessed from
// the source when absent.
type Code struct {
	formatter string
	style     string
}

// NewCode creates a code renderer for 256-color terminals.
func NewCode() *Code {
	return &Code{formatter: defaultCodeFormatter, style: defaultCodeStyle}
}

// NewPlainCode creates a code renderer without color escapes.
func NewPlainCode() *Code {
	return &Code{formatter: "noop", style: defaultCodeStyle}
}

// Render highlights the item text.
func (c *Code) Render(item model.Item) (string, error) {
	var language string
	item.Field("language", &language)

	var b strings.Builder
	if err := quick.Highlight(&b, item.Text, language, c.formatter, c.style); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
