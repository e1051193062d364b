package lineup

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/lineup/internal/model"
)

// TestDecode tests fragment parsing, including malformed tokens.
func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		want     []Ref
	}{
		{
			name:     "single local page",
			fragment: "#welcome-visitors",
			want:     []Ref{{Source: model.SourceLocal, Slug: "welcome-visitors"}},
		},
		{
			name:     "local then remote",
			fragment: "#intro/notes@wiki.example.org",
			want: []Ref{
				{Source: model.SourceLocal, Slug: "intro"},
				{Source: "wiki.example.org", Slug: "notes"},
			},
		},
		{
			name:     "leading slash and trailing slash are ignored",
			fragment: "#/intro/",
			want:     []Ref{{Source: model.SourceLocal, Slug: "intro"}},
		},
		{
			name:     "missing hash is accepted",
			fragment: "intro@fed.wiki.org:3000",
			want:     []Ref{{Source: "fed.wiki.org:3000", Slug: "intro"}},
		},
		{
			name:     "token is split on its last at sign",
			fragment: "#a@b@host.example",
			want:     []Ref{{Source: "host.example", Slug: "a@b"}},
		},
		{
			name:     "default source",
			fragment: "#how-to-wiki@default",
			want:     []Ref{{Source: model.SourceDefault, Slug: "how-to-wiki"}},
		},
		{
			name:     "legacy view source is local",
			fragment: "#intro@view",
			want:     []Ref{{Source: model.SourceLocal, Slug: "intro"}},
		},
		{
			name:     "empty source is local",
			fragment: "#intro@",
			want:     []Ref{{Source: model.SourceLocal, Slug: "intro"}},
		},
		{
			name:     "source is lowercased",
			fragment: "#intro@Wiki.Example.ORG",
			want:     []Ref{{Source: "wiki.example.org", Slug: "intro"}},
		},
		{
			name:     "empty tokens are skipped",
			fragment: "#a//b",
			want: []Ref{
				{Source: model.SourceLocal, Slug: "a"},
				{Source: model.SourceLocal, Slug: "b"},
			},
		},
		{
			name:     "tokens without slug are skipped",
			fragment: "#@wiki.example.org/b",
			want:     []Ref{{Source: model.SourceLocal, Slug: "b"}},
		},
		{
			name:     "ghost tokens are skipped",
			fragment: "#a@ghost/b",
			want:     []Ref{{Source: model.SourceLocal, Slug: "b"}},
		},
		{
			name:     "source with whitespace is dropped",
			fragment: "#a@bad host.example/b",
			want:     []Ref{{Source: model.SourceLocal, Slug: "b"}},
		},
		{
			name:     "source with query or fragment marks is dropped",
			fragment: "#a@x.example?q=1/b@y.example#top/c",
			want:     []Ref{{Source: model.SourceLocal, Slug: "c"}},
		},
		{
			name:     "source with an invalid port is dropped",
			fragment: "#a@x.example:port/b@x.example:8080",
			want:     []Ref{{Source: "x.example:8080", Slug: "b"}},
		},
		{
			name:     "empty fragment",
			fragment: "#",
			want:     nil,
		},
		{
			name:     "only separators",
			fragment: "#///",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, Decode(tt.fragment)); diff != "" {
				t.Errorf("Decode(%q) mismatch (-want +got):\n%s", tt.fragment, diff)
			}
		})
	}
}

// TestEncode tests fragment serialization.
func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("local pages are bare slugs", func(t *testing.T) {
		t.Parallel()

		got := Encode([]Ref{
			{Source: model.SourceLocal, Slug: "intro"},
			{Source: "wiki.example.org", Slug: "notes"},
		})
		if got != "#intro/notes@wiki.example.org" {
			t.Errorf("unexpected fragment %q", got)
		}
	})

	t.Run("ghost refs are not serialized", func(t *testing.T) {
		t.Parallel()

		got := Encode([]Ref{
			{Source: model.SourceLocal, Slug: "intro"},
			{Source: model.SourceGhost, Slug: "missing"},
		})
		if got != "#intro" {
			t.Errorf("unexpected fragment %q", got)
		}
	})

	t.Run("empty lineup", func(t *testing.T) {
		t.Parallel()

		if got := Encode(nil); got != "#" {
			t.Errorf("unexpected fragment %q", got)
		}
	})
}

// TestFragmentRoundTrip tests that decoding an encoded fragment returns
// the original refs for any sequence of non-ghost refs.
func TestFragmentRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(20261019, 1))
	sources := []model.Source{
		model.SourceLocal,
		model.SourceDefault,
		"wiki.example.org",
		"fed.wiki.org:3000",
		"localhost",
	}
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789-"

	randomSlug := func() string {
		var b strings.Builder
		for range 1 + rng.IntN(20) {
			b.WriteByte(alphabet[rng.IntN(len(alphabet))])
		}
		return b.String()
	}

	for range 500 {
		var refs []Ref
		for range 1 + rng.IntN(6) {
			refs = append(refs, Ref{
				Source: sources[rng.IntN(len(sources))],
				Slug:   randomSlug(),
			})
		}

		fragment := Encode(refs)
		if diff := cmp.Diff(refs, Decode(fragment)); diff != "" {
			t.Fatalf("round trip of %q mismatch (-want +got):\n%s", fragment, diff)
		}
	}
}
