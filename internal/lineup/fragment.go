package lineup

import (
	"strings"

	"github.com/nao1215/lineup/internal/model"
)

// DefaultFragment is the page shown when the fragment is empty.
const DefaultFragment = "welcome-visitors"

const (
	tokenSeparator  = "/"
	sourceSeparator = "@"
)

// Ref is one (source, slug) entry of a fragment.
type Ref struct {
	Source model.Source `json:"source"`
	Slug   string       `json:"slug"`
}

// String returns the fragment token for the ref.
func (r Ref) String() string {
	if r.Source == model.SourceLocal || r.Source == "" {
		return r.Slug
	}
	return r.Slug + sourceSeparator + string(r.Source)
}

// RefOf returns the ref of a panel.
func RefOf(p *model.Panel) Ref {
	return Ref{Source: p.Source, Slug: p.Slug}
}

// Decode parses a fragment into refs.
//
// Leading "#" and "/" and trailing "/" are ignored. Each token is split on
// its last "@" into slug and source; a token without "@" is a local page.
// Malformed tokens never fail the decode: empty tokens and tokens with an
// empty slug are skipped, an empty source or the legacy "view" source
// means local, and ghost tokens and sources that are not a bare
// host[:port] are dropped.
func Decode(fragment string) []Ref {
	fragment = strings.TrimLeft(strings.TrimSpace(fragment), "#/")
	fragment = strings.TrimRight(fragment, "/")
	if fragment == "" {
		return nil
	}

	var refs []Ref
	for _, token := range strings.Split(fragment, tokenSeparator) {
		ref, ok := decodeToken(token)
		if !ok {
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

func decodeToken(token string) (Ref, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Ref{}, false
	}

	slug, source := token, ""
	if i := strings.LastIndex(token, sourceSeparator); i >= 0 {
		slug, source = token[:i], token[i+len(sourceSeparator):]
	}
	if slug == "" {
		return Ref{}, false
	}

	ref := Ref{Source: model.ParseSource(source), Slug: slug}
	if ref.Source == model.SourceGhost || !ref.Source.Valid() {
		return Ref{}, false
	}
	return ref, true
}

// Encode serializes refs into a fragment. Ghost refs are omitted.
func Encode(refs []Ref) string {
	tokens := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.Source == model.SourceGhost || ref.Slug == "" {
			continue
		}
		tokens = append(tokens, ref.String())
	}
	return "#" + strings.Join(tokens, tokenSeparator)
}
