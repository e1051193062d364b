package lineup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/lineup/internal/model"
)

// Event is a user interaction with the lineup.
type Event interface {
	event()
}

// LinkActivated is an internal link activation inside a panel.
type LinkActivated struct {
	// Title is the link title as written in the page.
	Title string

	// PanelID is the panel that rendered the link.
	PanelID string

	// Branch keeps the panels right of PanelID instead of dropping them.
	Branch bool
}

// PanelActivated is an activation of a panel outside any link.
type PanelActivated struct {
	PanelID string
}

// ExternalLinkActivated is an activation of a link leaving the wiki.
type ExternalLinkActivated struct {
	URL string
}

func (LinkActivated) event()         {}
func (PanelActivated) event()        {}
func (ExternalLinkActivated) event() {}

// Resolver turns a link title clicked in origin into a panel.
type Resolver interface {
	Resolve(ctx context.Context, title string, origin *model.Panel) *model.Panel
}

// Opener opens an external URL outside the lineup.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, url string) error

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, url string) error {
	return f(ctx, url)
}

// Result describes what a dispatched event did.
type Result struct {
	// Panel is the panel appended by a link activation.
	Panel *model.Panel

	// Focus is the ID of the panel that should be brought into view.
	Focus string

	// Fragment is the lineup fragment after the event.
	Fragment string
}

// Dispatcher routes events to lineup mutations.
type Dispatcher struct {
	lineup   *Lineup
	resolver Resolver
	history  *History
	opener   Opener
	logger   *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithHistory sets the history that receives the fragment after every mutation.
func WithHistory(h *History) DispatcherOption {
	return func(d *Dispatcher) {
		d.history = h
	}
}

// WithOpener sets the opener for external links.
func WithOpener(o Opener) DispatcherOption {
	return func(d *Dispatcher) {
		d.opener = o
	}
}

// WithDispatcherLogger sets the logger.
func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a Dispatcher for l.
func NewDispatcher(l *Lineup, r Resolver, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		lineup:   l,
		resolver: r,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Lineup returns the lineup the dispatcher mutates.
func (d *Dispatcher) Lineup() *Lineup {
	return d.lineup
}

// History returns the configured history, or nil.
func (d *Dispatcher) History() *History {
	return d.history
}

// Dispatch handles one event.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (Result, error) {
	switch ev := ev.(type) {
	case LinkActivated:
		return d.follow(ctx, ev)
	case PanelActivated:
		if _, _, ok := d.lineup.Find(ev.PanelID); !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownPanel, ev.PanelID)
		}
		return Result{Focus: ev.PanelID, Fragment: d.lineup.Fragment()}, nil
	case ExternalLinkActivated:
		if d.opener == nil {
			return Result{}, ErrNoOpener
		}
		if err := d.opener.Open(ctx, ev.URL); err != nil {
			return Result{}, fmt.Errorf("failed to open %s: %w", ev.URL, err)
		}
		return Result{Fragment: d.lineup.Fragment()}, nil
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}
}

func (d *Dispatcher) follow(ctx context.Context, ev LinkActivated) (Result, error) {
	generation := d.lineup.Generation()
	origin, _, ok := d.lineup.Find(ev.PanelID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownPanel, ev.PanelID)
	}

	panel := d.resolver.Resolve(ctx, ev.Title, origin)

	if err := d.lineup.Place(generation, origin.ID, panel, ev.Branch); err != nil {
		d.logger.Debug("resolution dropped", "title", ev.Title, "error", err)
		return Result{}, err
	}

	fragment := d.lineup.Fragment()
	if d.history != nil {
		d.history.Push(fragment)
	}
	d.logger.Debug("link followed",
		"title", ev.Title,
		"source", panel.Source,
		"branch", ev.Branch,
		"fragment", fragment,
	)
	return Result{Panel: panel, Focus: panel.ID, Fragment: fragment}, nil
}

// Navigate replaces the lineup with the panels of fragment and records it
// in the history. The returned panels still need their pages loaded.
func (d *Dispatcher) Navigate(fragment string) []*model.Panel {
	panels := d.lineup.Populate(fragment)
	if d.history != nil {
		d.history.Push(d.lineup.Fragment())
	}
	return panels
}

// Back populates the lineup from the previous history entry.
func (d *Dispatcher) Back() ([]*model.Panel, bool) {
	if d.history == nil {
		return nil, false
	}
	fragment, ok := d.history.Back()
	if !ok {
		return nil, false
	}
	return d.lineup.Populate(fragment), true
}

// Forward populates the lineup from the next history entry.
func (d *Dispatcher) Forward() ([]*model.Panel, bool) {
	if d.history == nil {
		return nil, false
	}
	fragment, ok := d.history.Forward()
	if !ok {
		return nil, false
	}
	return d.lineup.Populate(fragment), true
}
