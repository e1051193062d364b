package locator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/nao1215/lineup/internal/model"
)

var (
	// ErrGhostSource is returned when an address is requested for a ghost source.
	ErrGhostSource = errors.New("ghost source has no address")

	// ErrEmptySlug is returned when the slug is empty.
	ErrEmptySlug = errors.New("empty slug")

	// ErrInvalidOrigin is returned by New when the origin is not an absolute URL.
	ErrInvalidOrigin = errors.New("origin must be an absolute URL")
)

// onionSuffix marks hosts that are only reachable over plain http through Tor.
const onionSuffix = ".onion"

// SchemeFunc returns the scheme ("http" or "https") used for a remote host.
type SchemeFunc func(host string) string

// Locator computes page addresses.
type Locator struct {
	// origin is the local origin without trailing slash.
	origin string

	// defaultPages is the namespace of shipped default pages.
	defaultPages string

	// scheme picks the scheme for remote hosts.
	scheme SchemeFunc
}

// Option configures a Locator.
type Option func(*Locator)

// WithDefaultPagesPath sets the default pages namespace under the origin.
func WithDefaultPagesPath(path string) Option {
	return func(l *Locator) {
		l.defaultPages = strings.Trim(path, "/")
	}
}

// WithSchemeFunc sets how the scheme of a remote host is chosen.
func WithSchemeFunc(fn SchemeFunc) Option {
	return func(l *Locator) {
		if fn != nil {
			l.scheme = fn
		}
	}
}

// New creates a Locator for the given local origin (e.g. "http://localhost:3000").
func New(origin string, opts ...Option) (*Locator, error) {
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrigin, origin)
	}

	l := &Locator{
		origin:       strings.TrimRight(u.String(), "/"),
		defaultPages: "default-pages",
		scheme:       func(string) string { return "http" },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Locate returns the page address for slug within source.
func (l *Locator) Locate(source model.Source, slug string) (string, error) {
	if slug == "" {
		return "", ErrEmptySlug
	}
	file := url.PathEscape(slug) + ".json"

	switch source {
	case model.SourceGhost:
		return "", ErrGhostSource
	case model.SourceLocal:
		return l.origin + "/" + file, nil
	case model.SourceDefault:
		return l.origin + "/" + l.defaultPages + "/" + file, nil
	default:
		host := string(source)
		return l.schemeFor(host) + "://" + host + "/" + file, nil
	}
}

// MustLocate is like Locate but returns "" instead of an error.
// It suits callers that only display addresses.
func (l *Locator) MustLocate(source model.Source, slug string) string {
	address, err := l.Locate(source, slug)
	if err != nil {
		return ""
	}
	return address
}

// Origin returns the configured local origin.
func (l *Locator) Origin() string {
	return l.origin
}

func (l *Locator) schemeFor(host string) string {
	if strings.HasSuffix(strings.ToLower(hostname(host)), onionSuffix) {
		return "http"
	}
	switch scheme := l.scheme(host); scheme {
	case "http", "https":
		return scheme
	default:
		return "http"
	}
}

// hostname strips an optional port.
func hostname(host string) string {
	if i := strings.LastIndexByte(host, ':'); i >= 0 && !strings.Contains(host[i:], "]") {
		return host[:i]
	}
	return host
}
