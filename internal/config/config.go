package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultOrigin is the base URL of the local wiki origin.
	// A wiki server started locally listens here by default.
	DefaultOrigin = "http://localhost:3000"

	// DefaultPagesPath is the namespace under the local origin that holds
	// the pages shipped with the wiki.
	DefaultPagesPath = "default-pages"

	// DefaultScheme is the scheme used to reach remote sites.
	DefaultScheme = "http"

	// DefaultTimeout bounds every single page probe.
	DefaultTimeout = 2 * time.Second

	// DefaultConcurrency is the number of page fetches run at once when a
	// whole lineup is loaded from a fragment.
	DefaultConcurrency = 8

	// DefaultFragment is shown when the fragment is empty.
	DefaultFragment = "welcome-visitors"

	// DefaultUserAgent identifies lineup in HTTP requests.
	DefaultUserAgent = "lineup/1.0 (+https://github.com/nao1215/lineup)"

	// DefaultMaxBodySize limits how much of a page response is read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultTorStartupTimeout is the maximum time to wait for the embedded
	// Tor daemon to bootstrap.
	DefaultTorStartupTimeout = 3 * time.Minute

	// AppName is the application name used for XDG directory paths.
	AppName = "lineup"
)

// Config holds all configuration options for lineup.
// It is populated from defaults, the optional config file, and CLI flags,
// in that order, and passed explicitly to the components that need it.
type Config struct {
	// Origin is the base URL of the local wiki origin, e.g. "http://localhost:3000".
	// Pages with source "local" and "default" are fetched relative to it.
	Origin string

	// DefaultPagesPath is the path segment under Origin holding default pages.
	DefaultPagesPath string

	// Scheme is the scheme used for remote sites without a site-specific one.
	Scheme string

	// Timeout bounds each individual page probe.
	// Resolution takes at most Timeout times the number of candidate sources.
	Timeout time.Duration

	// Concurrency is the number of concurrent page fetches when loading a lineup.
	Concurrency int

	// DefaultFragment is decoded when the fragment is empty.
	DefaultFragment string

	// UserAgent is the User-Agent header sent with page requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// ProxyAddress is an optional SOCKS5 proxy ("host:port") for all requests.
	ProxyAddress string

	// UseEmbeddedTor starts an embedded Tor daemon and routes requests
	// through it. Needed to reach wiki sites published as .onion services.
	UseEmbeddedTor bool

	// TorStartupTimeout is the maximum time to wait for the embedded Tor daemon.
	TorStartupTimeout time.Duration

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path to the configuration file, if any.
	ConfigFilePath string

	// Sites holds per-site settings loaded from the config file.
	Sites *File
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Origin:            DefaultOrigin,
		DefaultPagesPath:  DefaultPagesPath,
		Scheme:            DefaultScheme,
		Timeout:           DefaultTimeout,
		Concurrency:       DefaultConcurrency,
		DefaultFragment:   DefaultFragment,
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
		TorStartupTimeout: DefaultTorStartupTimeout,
		Sites:             &File{Sites: make(map[string]SiteConfig)},
	}
}

// ApplyFile copies the values set in the config file onto c.
// Zero values in the file leave the current settings untouched.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.Origin != "" {
		c.Origin = f.Origin
	}
	if f.DefaultPagesPath != "" {
		c.DefaultPagesPath = f.DefaultPagesPath
	}
	if f.Timeout > 0 {
		c.Timeout = f.Timeout
	}
	if f.Concurrency > 0 {
		c.Concurrency = f.Concurrency
	}
	if f.DefaultFragment != "" {
		c.DefaultFragment = f.DefaultFragment
	}
	if f.Proxy != "" {
		c.ProxyAddress = f.Proxy
	}
	if f.Defaults.Scheme != "" {
		c.Scheme = f.Defaults.Scheme
	}
	if f.Sites == nil {
		f.Sites = make(map[string]SiteConfig)
	}
	c.Sites = f
}

// SiteConfig returns the merged settings for a remote host.
func (c *Config) SiteConfig(host string) SiteConfig {
	site := SiteConfig{Scheme: c.Scheme}
	if c.Sites == nil {
		return site
	}
	merged := c.Sites.GetSiteConfig(host)
	if merged.Scheme == "" {
		merged.Scheme = c.Scheme
	}
	return merged
}

// OriginHost returns the host[:port] of the local origin, or "" if the
// origin cannot be parsed.
func (c *Config) OriginHost() string {
	u, err := url.Parse(c.Origin)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// XDGConfigDir returns the XDG config directory for lineup.
// On Linux: ~/.config/lineup
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGStateDir returns the XDG state directory for lineup, used for log files.
// On Linux: ~/.local/state/lineup
func XDGStateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Origin)
	if err != nil || u.Host == "" || !validScheme(u.Scheme) {
		return ErrInvalidOrigin
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if !validScheme(c.Scheme) {
		return ErrInvalidScheme
	}

	if c.Sites != nil {
		for _, site := range c.Sites.Sites {
			if site.Scheme != "" && !validScheme(site.Scheme) {
				return ErrInvalidScheme
			}
		}
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.ProxyAddress != "" && c.UseEmbeddedTor {
		return ErrConflictingProxy
	}

	return nil
}

func validScheme(scheme string) bool {
	return scheme == "http" || scheme == "https"
}
