package config

import (
	"strings"
	"time"
)

// SiteConfig holds settings for one remote wiki site.
type SiteConfig struct {
	// Scheme overrides the scheme used to reach the site ("http" or "https").
	Scheme string `yaml:"scheme,omitempty"`

	// Headers are extra HTTP headers sent with every request to the site.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// File represents the structure of the lineup configuration file.
type File struct {
	// Origin overrides the local origin base URL.
	Origin string `yaml:"origin,omitempty"`

	// DefaultPagesPath overrides the default pages namespace.
	DefaultPagesPath string `yaml:"defaultPagesPath,omitempty"`

	// Timeout overrides the probe timeout (e.g. "2s").
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Concurrency overrides the lineup fetch concurrency.
	Concurrency int `yaml:"concurrency,omitempty"`

	// DefaultFragment overrides the fragment used when none is given.
	DefaultFragment string `yaml:"defaultFragment,omitempty"`

	// Proxy is an optional SOCKS5 proxy address.
	Proxy string `yaml:"proxy,omitempty"`

	// Sites maps remote hosts to their settings.
	// Keys are host[:port] without scheme (e.g. "wiki.example.org").
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults apply to every site unless overridden.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for a remote host.
// It merges the site-specific configuration with defaults; host matching
// is case-insensitive.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	result := SiteConfig{Scheme: cf.Defaults.Scheme}
	if len(cf.Defaults.Headers) > 0 {
		result.Headers = make(map[string]string, len(cf.Defaults.Headers))
		for k, v := range cf.Defaults.Headers {
			result.Headers[k] = v
		}
	}

	site, ok := cf.Sites[host]
	if !ok {
		for name, candidate := range cf.Sites {
			if strings.EqualFold(name, host) {
				site, ok = candidate, true
				break
			}
		}
	}
	if !ok {
		return result
	}

	if site.Scheme != "" {
		result.Scheme = site.Scheme
	}
	if len(site.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(site.Headers))
		}
		for k, v := range site.Headers {
			result.Headers[k] = v
		}
	}

	return result
}
