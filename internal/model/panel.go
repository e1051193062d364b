package model

import "github.com/google/uuid"

// Panel is one visible unit of browsing state in a lineup.
//
// A panel is created either from a fragment (source and slug known, page
// fetched later) or by link resolution (page known at creation). Apart from
// attaching Page once, a panel is never mutated in place.
type Panel struct {
	// ID is an opaque identifier, unique within a lineup.
	ID string `json:"id"`

	// Source is where the page lives.
	Source Source `json:"source"`

	// Slug is the normalized page identifier within Source.
	Slug string `json:"slug"`

	// Address is the resolved fetch location. Empty for ghost panels.
	Address string `json:"address,omitempty"`

	// Page is the fetched page, nil until the fetch completes.
	Page *Page `json:"page,omitempty"`
}

// NewPanelID returns a fresh opaque panel identifier.
func NewPanelID() string {
	return uuid.NewString()
}

// NewPanel creates a panel with a fresh ID.
func NewPanel(source Source, slug, address string, page *Page) *Panel {
	return &Panel{
		ID:      NewPanelID(),
		Source:  source,
		Slug:    slug,
		Address: address,
		Page:    page,
	}
}

// IsOrigin reports whether the panel shows a page of the local origin.
func (p *Panel) IsOrigin() bool {
	return p.Source == SourceLocal
}

// IsGhost reports whether the panel is synthetic.
func (p *Panel) IsGhost() bool {
	return p.Source == SourceGhost
}

// Title returns the page title, or a title derived from the slug while the
// page is still loading.
func (p *Panel) Title() string {
	if p.Page != nil && p.Page.Title != "" {
		return p.Page.Title
	}
	return TitleFromSlug(p.Slug)
}

// Loaded reports whether the page has been attached.
func (p *Panel) Loaded() bool {
	return p.Page != nil
}
