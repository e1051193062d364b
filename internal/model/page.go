package model

import (
	"bytes"
	"encoding/json"
)

// ItemTypeParagraph is the only content type rendered by the core itself.
const ItemTypeParagraph = "paragraph"

// Page is a fetched wiki page.
// The JSON shape is {title, story: [item...], journal: [action...]}.
type Page struct {
	// Title is the human-readable page title.
	Title string `json:"title"`

	// Story is the ordered list of content items.
	Story []Item `json:"story"`

	// Journal records the sources through which this page was reached.
	Journal Journal `json:"journal"`
}

// Item is one entry of a page story.
// Type, Text and ID are decoded for the core; Raw keeps the whole JSON
// object so type-specific renderers can read their own fields.
type Item struct {
	// Type selects the renderer, e.g. "paragraph" or "markdown".
	Type string `json:"type"`

	// ID is the item identifier assigned by the wiki, if any.
	ID string `json:"id,omitempty"`

	// Text is the textual payload. Required for paragraphs.
	Text string `json:"text,omitempty"`

	// Raw is the undecoded JSON object of the item.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the well-known fields and keeps the raw object.
func (i *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*i = Item(p)
	i.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the raw object when present so unknown fields survive.
func (i Item) MarshalJSON() ([]byte, error) {
	if len(i.Raw) > 0 {
		return i.Raw, nil
	}
	type plain Item
	return json.Marshal(plain(i))
}

// Field decodes a type-specific field of the item into v.
// It returns false when the field is absent or cannot be decoded.
func (i Item) Field(name string, v any) bool {
	if len(i.Raw) == 0 {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(i.Raw, &fields); err != nil {
		return false
	}
	raw, ok := fields[name]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// Action is one journal entry.
// Wiki journals hold action objects ({type, site, ...}); older pages may
// list bare source names. Site is the source the action came from, empty
// when the action happened on the page's own origin.
type Action struct {
	// Type is the journal action type ("create", "fork", "edit", ...).
	Type string `json:"type,omitempty"`

	// Site is the origin host recorded for the action.
	Site string `json:"site,omitempty"`
}

// UnmarshalJSON accepts either an action object or a bare source string.
func (a *Action) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var site string
		if err := json.Unmarshal(data, &site); err != nil {
			return err
		}
		*a = Action{Site: site}
		return nil
	}
	type plain Action
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Action(p)
	return nil
}

// Journal is the ordered history of a page.
type Journal []Action

// Sources returns the non-empty journal sites in journal order.
// Sites that are not a bare host[:port] are dropped. Duplicates are kept;
// the resolver decides how to fold them.
func (j Journal) Sources() []Source {
	sources := make([]Source, 0, len(j))
	for _, action := range j {
		if action.Site == "" {
			continue
		}
		source := ParseSource(action.Site)
		if !source.Valid() {
			continue
		}
		sources = append(sources, source)
	}
	return sources
}

// JournalOf builds a journal from bare source names.
func JournalOf(sites ...string) Journal {
	journal := make(Journal, 0, len(sites))
	for _, site := range sites {
		journal = append(journal, Action{Site: site})
	}
	return journal
}
