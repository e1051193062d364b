package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/lineup/internal/model"
	"github.com/nao1215/lineup/internal/render"
)

// MarkdownWriter outputs documents as GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the document.
func (w *MarkdownWriter) Write(doc *Document) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, doc)
	w.writeSources(md, doc)
	for i, p := range doc.Panels {
		w.writePanel(md, i+1, p)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, doc *Document) {
	md.H1("Lineup")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Fragment", "`" + doc.Fragment + "`"},
			{"Origin", doc.Origin},
			{"Exported", doc.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Panels", strconv.Itoa(len(doc.Panels))},
		},
	})
	md.PlainText("")
}

// writeSources charts where the panels came from when there is more than one source.
func (w *MarkdownWriter) writeSources(md *markdown.Markdown, doc *Document) {
	order, counts := doc.CountBySource()
	if len(order) < 2 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Panels by source"),
		piechart.WithShowData(true),
	)
	for _, source := range order {
		chart.LabelAndIntValue(source.String(), uint64(counts[source])) //nolint:gosec // counts are small and positive
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writePanel(md *markdown.Markdown, n int, p Panel) {
	md.H2(strconv.Itoa(n) + ". " + p.Title)
	md.PlainText("")

	where := "`" + p.Source.String() + "`"
	if p.Address != "" {
		where += " " + markdown.Link(p.Address, p.Address)
	}
	md.PlainText("Source: " + where)
	md.PlainText("")

	switch {
	case p.Ghost:
		md.Note("This page could not be found in the expected context.")
		md.PlainText("")
	case !p.Loaded:
		md.Warning("This page could not be loaded.")
		md.PlainText("")
		return
	}

	for _, it := range p.Items {
		w.writeItem(md, it)
	}
}

func (w *MarkdownWriter) writeItem(md *markdown.Markdown, it Item) {
	if it.Placeholder {
		md.Note("Unsupported item type: " + it.Type)
		md.PlainText("")
		return
	}

	switch it.Type {
	case model.ItemTypeParagraph:
		text, _ := render.Substitute(it.Text, "", markdownLink)
		md.PlainText(text)
	case render.TypeCode:
		md.CodeBlocks(markdown.SyntaxHighlight(it.Language), it.Text)
	case render.TypeGraphviz:
		md.CodeBlocks(markdown.SyntaxHighlight("dot"), strings.TrimSpace(it.Text))
	case render.TypeMarkdown:
		md.PlainText(strings.TrimSpace(it.Text))
	case render.TypePagefold:
		md.HorizontalRule()
		if label := strings.TrimSpace(it.Text); label != "" {
			md.PlainText(markdown.Italic(label))
		}
	default:
		md.PlainText(it.Display)
	}
	md.PlainText("")
}

// markdownLink writes internal links in bold and external links as Markdown links.
func markdownLink(link render.Link) string {
	if link.Kind == render.LinkExternal {
		return markdown.Link(link.Text, link.URL)
	}
	return markdown.Bold(link.Title)
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Exported by [lineup](https://github.com/nao1215/lineup)*")
}
