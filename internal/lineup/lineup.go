package lineup

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/lineup/internal/locator"
	"github.com/nao1215/lineup/internal/model"
)

// DefaultConcurrency is the default number of page fetches run at once by Load.
const DefaultConcurrency = 8

// Prober fetches a single page. A nil page means absent.
type Prober interface {
	Probe(ctx context.Context, source model.Source, slug string) *model.Page
}

// Lineup is the ordered sequence of panels.
// It is safe for concurrent use: page fetches attach their results from
// other goroutines while the owner mutates the sequence.
type Lineup struct {
	mu         sync.RWMutex
	panels     []*model.Panel
	generation uint64

	locator         *locator.Locator
	defaultFragment string
	concurrency     int
	logger          *slog.Logger
}

// Option configures a Lineup.
type Option func(*Lineup)

// WithDefaultFragment sets the fragment used when a fragment decodes to nothing.
func WithDefaultFragment(fragment string) Option {
	return func(l *Lineup) {
		if fragment != "" {
			l.defaultFragment = fragment
		}
	}
}

// WithConcurrency sets how many pages Load fetches at once.
func WithConcurrency(n int) Option {
	return func(l *Lineup) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lineup) {
		l.logger = logger
	}
}

// New creates an empty Lineup whose panel addresses are computed by loc.
func New(loc *locator.Locator, opts ...Option) *Lineup {
	l := &Lineup{
		locator:         loc,
		defaultFragment: DefaultFragment,
		concurrency:     DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Populate replaces the whole sequence with one pageless panel per
// fragment entry and returns the new panels.
func (l *Lineup) Populate(fragment string) []*model.Panel {
	refs := Decode(fragment)
	if len(refs) == 0 {
		refs = Decode(l.defaultFragment)
	}

	panels := make([]*model.Panel, 0, len(refs))
	for _, ref := range refs {
		address := ""
		if l.locator != nil {
			address = l.locator.MustLocate(ref.Source, ref.Slug)
		}
		panels = append(panels, model.NewPanel(ref.Source, ref.Slug, address, nil))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.panels = panels
	l.generation++
	return slices.Clone(panels)
}

// Load fetches the page of every pageless panel concurrently and attaches
// each result to its own panel. Misses attach nothing. Panels removed while
// their fetch is in flight are ignored.
func (l *Lineup) Load(ctx context.Context, prober Prober) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for _, panel := range l.Panels() {
		if panel.Loaded() || panel.IsGhost() {
			continue
		}
		g.Go(func() error {
			page := prober.Probe(gctx, panel.Source, panel.Slug)
			if page == nil {
				l.logger.Debug("page not found", "source", panel.Source, "slug", panel.Slug)
				return nil
			}
			l.Attach(panel.ID, page)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Attach sets the page of the panel with the given ID. It reports whether
// the page was attached: pages attach once, and panels no longer in the
// lineup are left alone. The panel value is replaced, never written in place.
func (l *Lineup) Attach(id string, page *model.Page) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 || l.panels[i].Page != nil || page == nil {
		return false
	}
	attached := *l.panels[i]
	attached.Page = page
	l.panels[i] = &attached
	return true
}

// Truncate drops every panel right of the panel with the given ID.
func (l *Lineup) Truncate(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		return ErrUnknownPanel
	}
	l.truncate(i)
	return nil
}

// Append adds a panel at the right end.
func (l *Lineup) Append(panel *model.Panel) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.append(panel)
}

// Place appends panel after the panel with ID from, dropping everything
// right of it unless branch is set. It fails with ErrStale if the sequence
// changed since generation, leaving the lineup untouched.
func (l *Lineup) Place(generation uint64, from string, panel *model.Panel, branch bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.generation != generation {
		return ErrStale
	}
	i := l.index(from)
	if i < 0 {
		return ErrUnknownPanel
	}
	if l.index(panel.ID) >= 0 {
		return ErrDuplicatePanel
	}
	if !branch {
		l.truncate(i)
	}
	return l.append(panel)
}

func (l *Lineup) truncate(i int) {
	if i+1 == len(l.panels) {
		return
	}
	clear(l.panels[i+1:])
	l.panels = l.panels[:i+1]
	l.generation++
}

func (l *Lineup) append(panel *model.Panel) error {
	if l.index(panel.ID) >= 0 {
		return ErrDuplicatePanel
	}
	l.panels = append(l.panels, panel)
	l.generation++
	return nil
}

func (l *Lineup) index(id string) int {
	return slices.IndexFunc(l.panels, func(p *model.Panel) bool { return p.ID == id })
}

// Panels returns a snapshot of the sequence.
func (l *Lineup) Panels() []*model.Panel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.panels)
}

// Len returns the number of panels.
func (l *Lineup) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.panels)
}

// Find returns the panel with the given ID and its position.
func (l *Lineup) Find(id string) (*model.Panel, int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.index(id)
	if i < 0 {
		return nil, -1, false
	}
	return l.panels[i], i, true
}

// Refs returns the fragment entries of all non-ghost panels in order.
func (l *Lineup) Refs() []Ref {
	l.mu.RLock()
	defer l.mu.RUnlock()

	refs := make([]Ref, 0, len(l.panels))
	for _, p := range l.panels {
		if p.IsGhost() {
			continue
		}
		refs = append(refs, RefOf(p))
	}
	return refs
}

// Fragment serializes the lineup.
func (l *Lineup) Fragment() string {
	return Encode(l.Refs())
}

// Generation returns a counter bumped by every change to the sequence.
// Attaching a page does not change the sequence.
func (l *Lineup) Generation() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.generation
}
