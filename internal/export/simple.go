package export

import (
	"fmt"
	"io"
	"strings"
)

const ruleWidth = 70

// SimpleWriter outputs documents as plain text for the terminal.
type SimpleWriter struct {
	baseWriter

	// showLinks lists the links of every item under it.
	showLinks bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithLinks lists the links found in each item.
func WithLinks(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showLinks = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the document.
func (w *SimpleWriter) Write(doc *Document) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", ruleWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Lineup:   %s\n", doc.Fragment))
	sb.WriteString(fmt.Sprintf("Origin:   %s\n", doc.Origin))
	sb.WriteString(fmt.Sprintf("Exported: %s\n", doc.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(strings.Repeat("=", ruleWidth) + "\n")

	for i, p := range doc.Panels {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("[%d] %s (%s)\n", i+1, p.Title, p.Source))
		sb.WriteString(strings.Repeat("-", ruleWidth) + "\n")

		if !p.Loaded {
			sb.WriteString("  (not loaded)\n")
			continue
		}
		for _, it := range p.Items {
			w.writeItem(&sb, it)
		}
	}

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeItem(sb *strings.Builder, it Item) {
	if it.Placeholder {
		sb.WriteString(fmt.Sprintf("  [%s]\n", it.Type))
		return
	}
	for _, line := range strings.Split(it.Display, "\n") {
		sb.WriteString("  " + line + "\n")
	}
	if !w.showLinks {
		return
	}
	for _, link := range it.Links {
		target := link.Title
		if link.URL != "" {
			target = link.URL
		}
		sb.WriteString(fmt.Sprintf("    -> %s (%s)\n", target, link.Kind))
	}
}
