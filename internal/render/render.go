package render

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/nao1215/lineup/internal/model"
)

// Item types with built-in renderers.
const (
	TypeParagraph = model.ItemTypeParagraph
	TypeCode      = "code"
	TypeMarkdown  = "markdown"
	TypeHTML      = "html"
	TypeGraphviz  = "graphviz"
	TypePagefold  = "pagefold"
)

// DefaultWidth is the wrap width used when none is configured.
const DefaultWidth = 80

// Renderer renders one story item to display text.
type Renderer interface {
	Render(item model.Item) (string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(item model.Item) (string, error)

// Render calls f.
func (f RendererFunc) Render(item model.Item) (string, error) {
	return f(item)
}

// wikiText is implemented by renderers whose output uses the paragraph
// link syntax, so links are extracted from it like from a paragraph.
type wikiText interface {
	wikiText()
}

// LinkKind distinguishes internal from external links.
type LinkKind int

const (
	// LinkInternal targets a wiki page by title.
	LinkInternal LinkKind = iota

	// LinkExternal targets a URL outside the wiki.
	LinkExternal
)

// String returns "internal" or "external".
func (k LinkKind) String() string {
	if k == LinkExternal {
		return "external"
	}
	return "internal"
}

// MarshalText encodes the kind by name.
func (k LinkKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind written by MarshalText.
func (k *LinkKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "internal":
		*k = LinkInternal
	case "external":
		*k = LinkExternal
	default:
		return fmt.Errorf("unknown link kind %q", text)
	}
	return nil
}

// Link is an activatable link inside a fragment.
type Link struct {
	// Kind is internal or external.
	Kind LinkKind `json:"kind"`

	// Title is the target title of an internal link.
	Title string `json:"title,omitempty"`

	// URL is the target of an external link.
	URL string `json:"url,omitempty"`

	// Text is the displayed link text.
	Text string `json:"text"`

	// PanelID is the panel that rendered the link.
	PanelID string `json:"-"`
}

// Fragment is the rendered form of one story item.
type Fragment struct {
	// Type is the item type.
	Type string

	// ItemID is the story item ID, if any.
	ItemID string

	// Text is the display text.
	Text string

	// Links are the links in Text, in order of appearance.
	Links []Link

	// Placeholder is set when the item could not be rendered. Text then
	// holds the raw item type.
	Placeholder bool
}

// Registry maps item types to renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	logger    *slog.Logger
}

// Option configures a Registry.
type Option func(*registryOptions)

type registryOptions struct {
	width  int
	plain  bool
	logger *slog.Logger
}

// WithWidth sets the wrap width of the built-in renderers.
func WithWidth(width int) Option {
	return func(o *registryOptions) {
		if width > 0 {
			o.width = width
		}
	}
}

// WithPlain makes the built-in renderers emit text without color escapes.
func WithPlain() Option {
	return func(o *registryOptions) {
		o.plain = true
	}
}

// WithLogger sets the logger used to report renderer failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *registryOptions) {
		o.logger = logger
	}
}

// NewRegistry creates an empty registry. Only paragraphs render until
// renderers are registered.
func NewRegistry(opts ...Option) *Registry {
	o := newOptions(opts)
	return &Registry{
		renderers: make(map[string]Renderer),
		logger:    o.logger,
	}
}

// DefaultRegistry creates a registry with every built-in renderer.
func DefaultRegistry(opts ...Option) *Registry {
	o := newOptions(opts)
	r := NewRegistry(opts...)
	if o.plain {
		r.Register(TypeCode, NewPlainCode())
		r.Register(TypeMarkdown, NewPlainMarkdown(o.width))
	} else {
		r.Register(TypeCode, NewCode())
		r.Register(TypeMarkdown, NewMarkdown(o.width))
	}
	r.Register(TypeHTML, NewHTML())
	r.Register(TypeGraphviz, NewGraphviz())
	r.Register(TypePagefold, NewPagefold(o.width))
	return r
}

func newOptions(opts []Option) registryOptions {
	o := registryOptions{width: DefaultWidth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Register sets the renderer for an item type, replacing any previous one.
// Paragraphs are always rendered by the registry itself.
func (r *Registry) Register(itemType string, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[itemType] = renderer
}

// Lookup returns the renderer for an item type.
func (r *Registry) Lookup(itemType string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[itemType]
	return renderer, ok
}

// Types returns the registered item types.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.renderers))
	for t := range r.renderers {
		types = append(types, t)
	}
	return types
}

// Render renders the story of panel in order. A panel without a page
// renders to nothing.
func (r *Registry) Render(panel *model.Panel) []Fragment {
	if panel == nil || panel.Page == nil {
		return nil
	}
	fragments := make([]Fragment, 0, len(panel.Page.Story))
	for _, item := range panel.Page.Story {
		fragments = append(fragments, r.RenderItem(panel.ID, item))
	}
	return fragments
}

// RenderItem renders one item owned by the panel with the given ID.
// It never fails: unknown types and renderer errors yield a placeholder.
func (r *Registry) RenderItem(panelID string, item model.Item) (fragment Fragment) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Debug("renderer panicked", "type", item.Type, "panic", rec)
			fragment = Placeholder(item)
		}
	}()

	if item.Type == TypeParagraph {
		text, links := Paragraph(item.Text, panelID)
		return Fragment{Type: item.Type, ItemID: item.ID, Text: text, Links: links}
	}

	renderer, ok := r.Lookup(item.Type)
	if !ok {
		return Placeholder(item)
	}

	text, err := renderer.Render(item)
	if err != nil {
		r.logger.Debug("renderer failed", "type", item.Type, "id", item.ID, "error", err)
		return Placeholder(item)
	}

	fragment = Fragment{Type: item.Type, ItemID: item.ID, Text: text}
	if _, ok := renderer.(wikiText); ok {
		fragment.Text, fragment.Links = Paragraph(text, panelID)
	}
	return fragment
}

// Placeholder returns the fragment shown for an item that cannot be rendered.
func Placeholder(item model.Item) Fragment {
	itemType := item.Type
	if itemType == "" {
		itemType = "untyped"
	}
	return Fragment{Type: item.Type, ItemID: item.ID, Text: itemType, Placeholder: true}
}
