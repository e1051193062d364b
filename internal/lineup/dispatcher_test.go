package lineup

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/lineup/internal/model"
)

// resolverFunc adapts a function to Resolver.
type resolverFunc func(ctx context.Context, title string, origin *model.Panel) *model.Panel

func (f resolverFunc) Resolve(ctx context.Context, title string, origin *model.Panel) *model.Panel {
	return f(ctx, title, origin)
}

func staticResolver(source model.Source) resolverFunc {
	return func(_ context.Context, title string, _ *model.Panel) *model.Panel {
		return model.NewPanel(source, model.Slug(title), "", &model.Page{Title: title})
	}
}

// TestDispatchLink tests link activation with and without branching.
func TestDispatchLink(t *testing.T) {
	t.Parallel()

	t.Run("plain activation replaces panels right of the origin", func(t *testing.T) {
		t.Parallel()

		l := newTestLineup(t)
		panels := l.Populate("#p1/p2/p3")
		history := NewHistory()
		d := NewDispatcher(l, staticResolver("remote.example"), WithHistory(history))

		result, err := d.Dispatch(context.Background(), LinkActivated{Title: "Result Page", PanelID: panels[1].ID})
		if err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}

		want := []string{panels[0].ID, panels[1].ID, result.Panel.ID}
		if diff := cmp.Diff(want, ids(l.Panels())); diff != "" {
			t.Errorf("panels mismatch (-want +got):\n%s", diff)
		}
		if result.Fragment != "#p1/p2/result-page@remote.example" {
			t.Errorf("unexpected fragment %q", result.Fragment)
		}
		if result.Focus != result.Panel.ID {
			t.Errorf("expected focus on the new panel")
		}
		if history.Current() != result.Fragment {
			t.Errorf("expected history to hold %q, got %q", result.Fragment, history.Current())
		}
	})

	t.Run("branch activation keeps every panel", func(t *testing.T) {
		t.Parallel()

		l := newTestLineup(t)
		panels := l.Populate("#p1/p2/p3")
		d := NewDispatcher(l, staticResolver(model.SourceLocal))

		result, err := d.Dispatch(context.Background(), LinkActivated{Title: "R", PanelID: panels[1].ID, Branch: true})
		if err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}

		want := []string{panels[0].ID, panels[1].ID, panels[2].ID, result.Panel.ID}
		if diff := cmp.Diff(want, ids(l.Panels())); diff != "" {
			t.Errorf("panels mismatch (-want +got):\n%s", diff)
		}
		if result.Fragment != "#p1/p2/p3/r" {
			t.Errorf("unexpected fragment %q", result.Fragment)
		}
	})

	t.Run("resolver receives the origin panel", func(t *testing.T) {
		t.Parallel()

		l := newTestLineup(t)
		panels := l.Populate("#p1/p2@remote.example")

		var gotOrigin *model.Panel
		d := NewDispatcher(l, resolverFunc(func(_ context.Context, title string, origin *model.Panel) *model.Panel {
			gotOrigin = origin
			return model.NewPanel(model.SourceLocal, model.Slug(title), "", nil)
		}))

		if _, err := d.Dispatch(context.Background(), LinkActivated{Title: "X", PanelID: panels[1].ID}); err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
		if gotOrigin == nil || gotOrigin.ID != panels[1].ID {
			t.Errorf("expected origin %s, got %+v", panels[1].ID, gotOrigin)
		}
	})

	t.Run("ghost result stays out of the fragment", func(t *testing.T) {
		t.Parallel()

		l := newTestLineup(t)
		panels := l.Populate("#p1")
		d := NewDispatcher(l, staticResolver(model.SourceGhost))

		result, err := d.Dispatch(context.Background(), LinkActivated{Title: "Nowhere", PanelID: panels[0].ID})
		if err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
		if result.Fragment != "#p1" {
			t.Errorf("unexpected fragment %q", result.Fragment)
		}
		if l.Len() != 2 {
			t.Errorf("expected the ghost panel in the live lineup, got %d panels", l.Len())
		}
	})

	t.Run("resolution landing after a lineup change is dropped", func(t *testing.T) {
		t.Parallel()

		l := newTestLineup(t)
		panels := l.Populate("#p1/p2")
		d := NewDispatcher(l, resolverFunc(func(_ context.Context, title string, _ *model.Panel) *model.Panel {
			// The reader navigates elsewhere while the probe is in flight.
			l.Populate("#elsewhere")
			return model.NewPanel(model.SourceLocal, model.Slug(title), "", nil)
		}))

		_, err := d.Dispatch(context.Background(), LinkActivated{Title: "Late", PanelID: panels[0].ID})
		if !errors.Is(err, ErrStale) {
			t.Fatalf("expected ErrStale, got %v", err)
		}
		if got := l.Fragment(); got != "#elsewhere" {
			t.Errorf("expected the lineup to be left as navigated, got %q", got)
		}
	})

	t.Run("unknown origin panel", func(t *testing.T) {
		t.Parallel()

		l := newTestLineup(t)
		l.Populate("#p1")
		d := NewDispatcher(l, staticResolver(model.SourceLocal))

		if _, err := d.Dispatch(context.Background(), LinkActivated{Title: "X", PanelID: "missing"}); !errors.Is(err, ErrUnknownPanel) {
			t.Errorf("expected ErrUnknownPanel, got %v", err)
		}
	})
}

// TestDispatchOther tests events that do not mutate the lineup.
func TestDispatchOther(t *testing.T) {
	t.Parallel()

	t.Run("panel activation only focuses", func(t *testing.T) {
		t.Parallel()

		l := newTestLineup(t)
		panels := l.Populate("#p1/p2")
		d := NewDispatcher(l, staticResolver(model.SourceLocal))
		before := l.Generation()

		result, err := d.Dispatch(context.Background(), PanelActivated{PanelID: panels[0].ID})
		if err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
		if result.Focus != panels[0].ID || result.Panel != nil {
			t.Errorf("unexpected result %+v", result)
		}
		if l.Generation() != before {
			t.Error("expected no lineup mutation")
		}
	})

	t.Run("external link goes to the opener", func(t *testing.T) {
		t.Parallel()

		l := newTestLineup(t)
		l.Populate("#p1")

		var opened string
		d := NewDispatcher(l, staticResolver(model.SourceLocal), WithOpener(OpenerFunc(func(_ context.Context, url string) error {
			opened = url
			return nil
		})))
		before := l.Generation()

		if _, err := d.Dispatch(context.Background(), ExternalLinkActivated{URL: "https://example.com"}); err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
		if opened != "https://example.com" {
			t.Errorf("expected opener to receive the URL, got %q", opened)
		}
		if l.Generation() != before {
			t.Error("expected no lineup mutation")
		}
	})

	t.Run("external link without opener", func(t *testing.T) {
		t.Parallel()

		d := NewDispatcher(newTestLineup(t), staticResolver(model.SourceLocal))
		if _, err := d.Dispatch(context.Background(), ExternalLinkActivated{URL: "https://example.com"}); !errors.Is(err, ErrNoOpener) {
			t.Errorf("expected ErrNoOpener, got %v", err)
		}
	})
}

// TestDispatcherNavigation tests fragment navigation through the history.
func TestDispatcherNavigation(t *testing.T) {
	t.Parallel()

	l := newTestLineup(t)
	d := NewDispatcher(l, staticResolver(model.SourceLocal), WithHistory(NewHistory()))

	panels := d.Navigate("#a")
	if _, err := d.Dispatch(context.Background(), LinkActivated{Title: "B", PanelID: panels[0].ID}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got := l.Fragment(); got != "#a/b" {
		t.Fatalf("unexpected fragment %q", got)
	}

	if _, ok := d.Back(); !ok {
		t.Fatal("expected Back to succeed")
	}
	if got := l.Fragment(); got != "#a" {
		t.Errorf("expected #a after Back, got %q", got)
	}

	if _, ok := d.Forward(); !ok {
		t.Fatal("expected Forward to succeed")
	}
	if got := l.Fragment(); got != "#a/b" {
		t.Errorf("expected #a/b after Forward, got %q", got)
	}

	if _, ok := d.Forward(); ok {
		t.Error("expected Forward at the newest entry to fail")
	}
}
