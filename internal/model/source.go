package model

import (
	"net/url"
	"strings"
	"unicode"
)

// Source identifies where a page is fetched from.
// Any value other than the named constants is the host of a remote wiki
// origin (e.g. "wiki.example.org" or "fed.wiki.org:3000").
type Source string

const (
	// SourceLocal is the viewer's own origin.
	SourceLocal Source = "local"

	// SourceDefault is the fallback namespace of pages shipped with the
	// local origin ("default pages").
	SourceDefault Source = "default"

	// SourceGhost marks a synthetic panel that has no backing origin.
	// Ghost panels are never probed and never serialized.
	SourceGhost Source = "ghost"
)

// legacySourceLocal is the source name older fragments used for the local origin.
const legacySourceLocal = "view"

// ParseSource converts a raw source token into a Source.
// Empty tokens and the legacy "view" token map to SourceLocal,
// hostnames are lowercased.
func ParseSource(raw string) Source {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch raw {
	case "", legacySourceLocal, string(SourceLocal):
		return SourceLocal
	default:
		return Source(raw)
	}
}

// IsRemote reports whether the source names a remote origin host.
func (s Source) IsRemote() bool {
	switch s {
	case SourceLocal, SourceDefault, SourceGhost, "":
		return false
	default:
		return true
	}
}

// String returns the source as a plain string.
func (s Source) String() string {
	return string(s)
}

// IsHost reports whether s is a bare host[:port]. Anything that would
// change the meaning of a fragment token or a page address (paths,
// userinfo, queries, fragments, whitespace) is rejected.
func IsHost(s string) bool {
	if s == "" || strings.ContainsAny(s, "/@#?\\") || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	u, err := url.Parse("//" + s)
	return err == nil && u.Host == s
}

// Valid reports whether the source is a named source or a bare remote host.
func (s Source) Valid() bool {
	if s.IsRemote() {
		return IsHost(string(s))
	}
	return s != ""
}
