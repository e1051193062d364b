package lineup

import "sync"

// History is a back/forward stack of fragments.
// Pushing after going back discards the forward entries.
type History struct {
	mu      sync.Mutex
	entries []string
	cursor  int
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{}
}

// Push records fragment as the current entry.
// Pushing the current fragment again is a no-op.
func (h *History) Push(fragment string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) > 0 && h.entries[h.cursor] == fragment {
		return
	}
	if len(h.entries) > 0 {
		h.entries = h.entries[:h.cursor+1]
	}
	h.entries = append(h.entries, fragment)
	h.cursor = len(h.entries) - 1
}

// Back moves one entry back and returns it.
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor <= 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Forward moves one entry forward and returns it.
func (h *History) Forward() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor+1 >= len(h.entries) {
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Current returns the current entry.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return ""
	}
	return h.entries[h.cursor]
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
