package tui

import "github.com/nao1215/lineup/internal/lineup"

// loadedMsg reports that every pending page fetch of load number seq finished.
type loadedMsg struct {
	seq uint64
	err error
}

// resolvedMsg reports the outcome of a followed link.
type resolvedMsg struct {
	title  string
	result lineup.Result
	err    error
}

// openedMsg reports the outcome of opening an external link.
type openedMsg struct {
	url string
	err error
}

// copiedMsg reports the outcome of copying the fragment.
type copiedMsg struct {
	fragment string
	err      error
}
