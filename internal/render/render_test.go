package render

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/lineup/internal/model"
)

func item(t *testing.T, raw string) model.Item {
	t.Helper()
	var it model.Item
	if err := json.Unmarshal([]byte(raw), &it); err != nil {
		t.Fatalf("failed to decode item: %v", err)
	}
	return it
}

// TestParagraph tests inline link substitution.
func TestParagraph(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		wantText  string
		wantLinks []Link
	}{
		{
			name:     "plain text",
			text:     "No links here.",
			wantText: "No links here.",
		},
		{
			name:     "internal link",
			text:     "See [[Getting Started]] first.",
			wantText: "See Getting Started first.",
			wantLinks: []Link{
				{Kind: LinkInternal, Title: "Getting Started", Text: "Getting Started", PanelID: "p1"},
			},
		},
		{
			name:     "external link",
			text:     "Read [https://example.com the docs] now.",
			wantText: "Read the docs now.",
			wantLinks: []Link{
				{Kind: LinkExternal, URL: "https://example.com", Text: "the docs", PanelID: "p1"},
			},
		},
		{
			name:     "mixed links keep order",
			text:     "[[A]] then [http://b.example b site] then [[C D]]",
			wantText: "A then b site then C D",
			wantLinks: []Link{
				{Kind: LinkInternal, Title: "A", Text: "A", PanelID: "p1"},
				{Kind: LinkExternal, URL: "http://b.example", Text: "b site", PanelID: "p1"},
				{Kind: LinkInternal, Title: "C D", Text: "C D", PanelID: "p1"},
			},
		},
		{
			name:     "unbalanced brackets are left alone",
			text:     "a [[broken link and [nospace]",
			wantText: "a [[broken link and [nospace]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text, links := Paragraph(tt.text, "p1")
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
			if diff := cmp.Diff(tt.wantLinks, links); diff != "" {
				t.Errorf("links mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestRegistryRender tests dispatch by item type and placeholders.
func TestRegistryRender(t *testing.T) {
	t.Parallel()

	t.Run("fragments follow story order", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		r.Register("shout", RendererFunc(func(it model.Item) (string, error) {
			return strings.ToUpper(it.Text), nil
		}))
		panel := model.NewPanel(model.SourceLocal, "x", "", &model.Page{
			Title: "X",
			Story: []model.Item{
				{Type: "paragraph", Text: "one [[Two]]"},
				{Type: "shout", Text: "three"},
				{Type: "video", Text: "ignored"},
			},
		})

		fragments := r.Render(panel)
		if len(fragments) != 3 {
			t.Fatalf("expected 3 fragments, got %d", len(fragments))
		}
		if fragments[0].Text != "one Two" || len(fragments[0].Links) != 1 {
			t.Errorf("unexpected paragraph fragment %+v", fragments[0])
		}
		if fragments[0].Links[0].PanelID != panel.ID {
			t.Errorf("expected link to carry panel id %s, got %s", panel.ID, fragments[0].Links[0].PanelID)
		}
		if fragments[1].Text != "THREE" || fragments[1].Placeholder {
			t.Errorf("unexpected custom fragment %+v", fragments[1])
		}
		if !fragments[2].Placeholder || fragments[2].Text != "video" {
			t.Errorf("expected placeholder naming the type, got %+v", fragments[2])
		}
	})

	t.Run("renderer errors become placeholders", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		r.Register("broken", RendererFunc(func(model.Item) (string, error) {
			return "", errors.New("boom")
		}))

		got := r.RenderItem("p", model.Item{Type: "broken"})
		if !got.Placeholder || got.Text != "broken" {
			t.Errorf("expected placeholder, got %+v", got)
		}
	})

	t.Run("renderer panics become placeholders", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		r.Register("panicky", RendererFunc(func(model.Item) (string, error) {
			panic("unexpected")
		}))

		got := r.RenderItem("p", model.Item{Type: "panicky"})
		if !got.Placeholder {
			t.Errorf("expected placeholder, got %+v", got)
		}
	})

	t.Run("untyped item is a placeholder", func(t *testing.T) {
		t.Parallel()

		got := NewRegistry().RenderItem("p", model.Item{})
		if !got.Placeholder || got.Text != "untyped" {
			t.Errorf("expected untyped placeholder, got %+v", got)
		}
	})

	t.Run("pageless panel renders nothing", func(t *testing.T) {
		t.Parallel()

		if got := NewRegistry().Render(model.NewPanel(model.SourceLocal, "x", "", nil)); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("default registry knows the built-in types", func(t *testing.T) {
		t.Parallel()

		r := DefaultRegistry()
		for _, typ := range []string{TypeCode, TypeMarkdown, TypeHTML, TypeGraphviz, TypePagefold} {
			if _, ok := r.Lookup(typ); !ok {
				t.Errorf("expected a renderer for %q", typ)
			}
		}
	})
}

// TestBuiltinRenderers tests the type renderers.
func TestBuiltinRenderers(t *testing.T) {
	t.Parallel()

	t.Run("code keeps the source text", func(t *testing.T) {
		t.Parallel()

		got, err := NewPlainCode().Render(item(t, `{"type":"code","language":"go","text":"package main\nfunc main() {}"}`))
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if got != "package main\nfunc main() {}" {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("markdown keeps the prose", func(t *testing.T) {
		t.Parallel()

		got, err := NewPlainMarkdown(40).Render(model.Item{Type: TypeMarkdown, Text: "# Hello\n\nSome *emphasis*."})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(got, "Hello") || !strings.Contains(got, "emphasis") {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("html anchors become external links", func(t *testing.T) {
		t.Parallel()

		r := DefaultRegistry()
		got := r.RenderItem("p9", model.Item{
			Type: TypeHTML,
			Text: `<p>Visit <a href="https://example.com/a">the site</a> or [[Home Page]].</p><script>alert(1)</script>`,
		})
		if got.Placeholder {
			t.Fatalf("unexpected placeholder %+v", got)
		}
		if got.Text != "Visit the site or Home Page." {
			t.Errorf("unexpected text %q", got.Text)
		}
		want := []Link{
			{Kind: LinkExternal, URL: "https://example.com/a", Text: "the site", PanelID: "p9"},
			{Kind: LinkInternal, Title: "Home Page", Text: "Home Page", PanelID: "p9"},
		}
		if diff := cmp.Diff(want, got.Links); diff != "" {
			t.Errorf("links mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("graphviz frames the source", func(t *testing.T) {
		t.Parallel()

		got, err := NewGraphviz().Render(model.Item{Type: TypeGraphviz, Text: "digraph { a -> b }"})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(got, "digraph { a -> b }") || !strings.Contains(got, "graphviz") {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("pagefold draws a labelled rule", func(t *testing.T) {
		t.Parallel()

		got, err := NewPagefold(20).Render(model.Item{Type: TypePagefold, Text: "notes"})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(got, " notes ") || !strings.Contains(got, "──") {
			t.Errorf("unexpected output %q", got)
		}
	})
}

func TestLinkKindText(t *testing.T) {
	t.Parallel()

	for _, kind := range []LinkKind{LinkInternal, LinkExternal} {
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", kind, err)
		}
		var got LinkKind
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != kind {
			t.Errorf("round trip of %v gave %v", kind, got)
		}
	}

	var k LinkKind
	if err := k.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("expected error for unknown kind")
	}
}
