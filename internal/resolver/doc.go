// Package resolver turns a clicked link title into a panel.
//
// The resolver builds a search order of candidate sources from the panel
// the link was clicked in: the local origin first, then the panel's own
// source, then the sources recorded in the panel's page journal, most
// recent first. Candidates are probed one after another and the first hit
// wins. When every candidate misses, a ghost panel explains that the page
// could not be found.
package resolver
