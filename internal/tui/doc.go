// Package tui is the interactive lineup browser.
//
// Panels are laid out side by side. The focused panel's links can be
// selected and followed: following replaces the panels right of the focused
// one, branching keeps them. Back and forward walk the fragment history.
package tui
