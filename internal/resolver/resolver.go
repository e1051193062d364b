package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/lineup/internal/locator"
	"github.com/nao1215/lineup/internal/model"
)

// Prober fetches a single page. A nil page means absent.
type Prober interface {
	Probe(ctx context.Context, source model.Source, slug string) *model.Page
}

// Resolver resolves link titles against candidate sources.
type Resolver struct {
	prober    Prober
	locator   *locator.Locator
	localHost string
	logger    *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLocalHost sets the host of the local origin. Journal entries naming
// this host are treated as the local source.
func WithLocalHost(host string) Option {
	return func(r *Resolver) {
		r.localHost = strings.ToLower(host)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver.
func New(prober Prober, loc *locator.Locator, opts ...Option) *Resolver {
	r := &Resolver{
		prober:  prober,
		locator: loc,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Candidates returns the sources to probe for a link clicked in origin,
// in probing order and without duplicates.
func (r *Resolver) Candidates(origin *model.Panel) []model.Source {
	candidates := []model.Source{model.SourceLocal}
	seen := map[model.Source]bool{model.SourceLocal: true}

	add := func(source model.Source) {
		source = r.fold(source)
		if !source.Valid() || source == model.SourceGhost || seen[source] {
			return
		}
		seen[source] = true
		candidates = append(candidates, source)
	}

	if origin == nil {
		return candidates
	}
	add(origin.Source)

	if origin.Page == nil {
		return candidates
	}
	sources := origin.Page.Journal.Sources()
	for i := len(sources) - 1; i >= 0; i-- {
		add(sources[i])
	}
	return candidates
}

// fold maps the local origin host to the local source.
func (r *Resolver) fold(source model.Source) model.Source {
	if r.localHost != "" && strings.EqualFold(string(source), r.localHost) {
		return model.SourceLocal
	}
	return source
}

// Resolve probes the candidates for title and returns a panel for the
// first hit, or a ghost panel when there is none. It never fails.
func (r *Resolver) Resolve(ctx context.Context, title string, origin *model.Panel) *model.Panel {
	slug := model.Slug(title)
	if slug == "" {
		return Ghost(title)
	}

	for _, source := range r.Candidates(origin) {
		if ctx.Err() != nil {
			r.logger.Debug("resolution cancelled", "title", title, "error", ctx.Err())
			break
		}
		page := r.prober.Probe(ctx, source, slug)
		if page == nil {
			continue
		}
		r.logger.Debug("resolved", "title", title, "slug", slug, "source", source)
		return model.NewPanel(source, slug, r.address(source, slug), page)
	}

	r.logger.Debug("resolution exhausted", "title", title, "slug", slug)
	return Ghost(title)
}

func (r *Resolver) address(source model.Source, slug string) string {
	if r.locator == nil {
		return ""
	}
	return r.locator.MustLocate(source, slug)
}

// Ghost returns a synthetic panel for a page that could not be found.
func Ghost(title string) *model.Panel {
	page := &model.Page{
		Title: title,
		Story: []model.Item{
			{
				Type: model.ItemTypeParagraph,
				Text: fmt.Sprintf("We could not find the page \"%s\" in the expected context.", title),
			},
		},
		Journal: model.Journal{},
	}
	return model.NewPanel(model.SourceGhost, model.Slug(title), "", page)
}
