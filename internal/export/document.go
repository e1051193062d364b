package export

import (
	"time"

	"github.com/nao1215/lineup/internal/model"
	"github.com/nao1215/lineup/internal/render"
)

// Document is an exportable snapshot of a lineup.
type Document struct {
	// Fragment is the serialized lineup.
	Fragment string `json:"fragment"`

	// Origin is the local origin the lineup was loaded against.
	Origin string `json:"origin"`

	// GeneratedAt is when the snapshot was taken.
	GeneratedAt time.Time `json:"generated_at"`

	// Panels are the panels in lineup order.
	Panels []Panel `json:"panels"`
}

// Panel is one exported panel.
type Panel struct {
	Title   string         `json:"title"`
	Source  model.Source   `json:"source"`
	Slug    string         `json:"slug"`
	Address string         `json:"address,omitempty"`
	Loaded  bool           `json:"loaded"`
	Ghost   bool           `json:"ghost,omitempty"`
	Journal []model.Source `json:"journal,omitempty"`
	Items   []Item         `json:"items,omitempty"`
}

// Item is one exported story item.
type Item struct {
	// Type is the item type.
	Type string `json:"type"`

	// ID is the story item ID.
	ID string `json:"id,omitempty"`

	// Text is the raw item text.
	Text string `json:"text,omitempty"`

	// Language is the language of code items.
	Language string `json:"language,omitempty"`

	// Display is the rendered text.
	Display string `json:"display"`

	// Links are the links of the rendered text.
	Links []render.Link `json:"links,omitempty"`

	// Placeholder marks items that could not be rendered.
	Placeholder bool `json:"placeholder,omitempty"`
}

// NewDocument snapshots panels, rendering each story with registry.
func NewDocument(panels []*model.Panel, fragment, origin string, registry *render.Registry, now time.Time) *Document {
	doc := &Document{
		Fragment:    fragment,
		Origin:      origin,
		GeneratedAt: now,
		Panels:      make([]Panel, 0, len(panels)),
	}

	for _, p := range panels {
		exported := Panel{
			Title:   p.Title(),
			Source:  p.Source,
			Slug:    p.Slug,
			Address: p.Address,
			Loaded:  p.Loaded(),
			Ghost:   p.IsGhost(),
		}
		if p.Page != nil {
			exported.Journal = p.Page.Journal.Sources()
			fragments := registry.Render(p)
			for i, it := range p.Page.Story {
				var language string
				it.Field("language", &language)
				exported.Items = append(exported.Items, Item{
					Type:        it.Type,
					ID:          it.ID,
					Text:        it.Text,
					Language:    language,
					Display:     fragments[i].Text,
					Links:       fragments[i].Links,
					Placeholder: fragments[i].Placeholder,
				})
			}
		}
		doc.Panels = append(doc.Panels, exported)
	}
	return doc
}

// CountBySource returns how many panels come from each source, in order of
// first appearance.
func (d *Document) CountBySource() ([]model.Source, map[model.Source]int) {
	var order []model.Source
	counts := make(map[model.Source]int)
	for _, p := range d.Panels {
		if counts[p.Source] == 0 {
			order = append(order, p.Source)
		}
		counts[p.Source]++
	}
	return order, counts
}
