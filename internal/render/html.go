package render

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/lineup/internal/model"
)

// HTML renders "html" items as plain text. Anchors are rewritten to the
// external link syntax so they stay activatable.
type HTML struct{}

// NewHTML creates an html renderer.
func NewHTML() *HTML {
	return &HTML{}
}

func (*HTML) wikiText() {}

// blockElements end a line when they close.
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "pre": true, "blockquote": true, "tr": true,
}

// Render converts the item text to plain text.
func (h *HTML) Render(item model.Item) (string, error) {
	doc, err := html.Parse(strings.NewReader(item.Text))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "br":
				b.WriteString("\n")
				return
			case "a":
				if href := getAttr(n, "href"); href != "" && !strings.ContainsAny(href, " ]") {
					b.WriteString("[" + href + " " + strings.TrimSpace(textOf(n)) + "]")
					return
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			b.WriteString("\n")
		}
	}
	walk(doc)

	return strings.TrimSpace(b.String()), nil
}

// textOf returns the concatenated text below n.
func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textOf(c))
	}
	return b.String()
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
