package render

import (
	"regexp"
	"strings"
)

// linkPattern matches "[[Title]]" (group 1) or "[url words]" (groups 2, 3).
var linkPattern = regexp.MustCompile(`\[\[([^\]]+)\]\]|\[([^\s\[\]]+) ([^\[\]]+)\]`)

// Paragraph substitutes the inline link syntax of text and returns the
// display text with the links found, in order.
// Internal links display their title, external links their words.
func Paragraph(text, panelID string) (string, []Link) {
	return Substitute(text, panelID, func(link Link) string { return link.Text })
}

// Substitute replaces every inline link of text with replace(link) and
// returns the result with the links found, in order.
func Substitute(text, panelID string, replace func(Link) string) (string, []Link) {
	matches := linkPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	var (
		b     strings.Builder
		links = make([]Link, 0, len(matches))
		last  int
	)
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		last = m[1]

		var link Link
		if m[2] >= 0 {
			title := text[m[2]:m[3]]
			link = Link{Kind: LinkInternal, Title: title, Text: title, PanelID: panelID}
		} else {
			link = Link{Kind: LinkExternal, URL: text[m[4]:m[5]], Text: text[m[6]:m[7]], PanelID: panelID}
		}
		b.WriteString(replace(link))
		links = append(links, link)
	}
	b.WriteString(text[last:])
	return b.String(), links
}
