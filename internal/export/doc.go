// Package export writes a loaded lineup to a file or terminal.
//
// A Document is a snapshot of the lineup: its fragment, its panels and
// the rendered story of each panel. Writers turn a Document into
// Markdown, JSON or plain text.
package export
