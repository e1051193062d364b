package lineup

import "testing"

// TestHistory tests back/forward navigation.
func TestHistory(t *testing.T) {
	t.Parallel()

	t.Run("empty history cannot move", func(t *testing.T) {
		t.Parallel()

		h := NewHistory()
		if _, ok := h.Back(); ok {
			t.Error("expected Back to fail")
		}
		if _, ok := h.Forward(); ok {
			t.Error("expected Forward to fail")
		}
		if h.Current() != "" {
			t.Errorf("expected empty current, got %q", h.Current())
		}
	})

	t.Run("back and forward walk the entries", func(t *testing.T) {
		t.Parallel()

		h := NewHistory()
		h.Push("#a")
		h.Push("#a/b")
		h.Push("#a/b/c")

		if got, ok := h.Back(); !ok || got != "#a/b" {
			t.Errorf("Back() = %q, %v", got, ok)
		}
		if got, ok := h.Back(); !ok || got != "#a" {
			t.Errorf("Back() = %q, %v", got, ok)
		}
		if _, ok := h.Back(); ok {
			t.Error("expected Back past the first entry to fail")
		}
		if got, ok := h.Forward(); !ok || got != "#a/b" {
			t.Errorf("Forward() = %q, %v", got, ok)
		}
	})

	t.Run("push after back drops forward entries", func(t *testing.T) {
		t.Parallel()

		h := NewHistory()
		h.Push("#a")
		h.Push("#a/b")
		h.Back()
		h.Push("#a/c")

		if _, ok := h.Forward(); ok {
			t.Error("expected no forward entry")
		}
		if h.Len() != 2 {
			t.Errorf("expected 2 entries, got %d", h.Len())
		}
		if h.Current() != "#a/c" {
			t.Errorf("expected #a/c, got %q", h.Current())
		}
	})

	t.Run("pushing the current entry again is a no-op", func(t *testing.T) {
		t.Parallel()

		h := NewHistory()
		h.Push("#a")
		h.Push("#a")
		if h.Len() != 1 {
			t.Errorf("expected 1 entry, got %d", h.Len())
		}
	})
}
