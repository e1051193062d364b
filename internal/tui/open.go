package tui

import (
	"context"
	"io"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// BrowserOpener opens external links in the system web browser.
type BrowserOpener struct{}

// Open launches the browser for url. Browser output is discarded so it
// does not draw over the lineup.
func (BrowserOpener) Open(_ context.Context, url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}

// WriteClipboard copies text to the system clipboard.
func WriteClipboard(text string) error {
	return clipboard.WriteAll(text)
}
