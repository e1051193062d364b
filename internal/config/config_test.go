package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Origin is localhost:3000", func(t *testing.T) {
		t.Parallel()
		if cfg.Origin != "http://localhost:3000" {
			t.Errorf("expected Origin to be 'http://localhost:3000', got '%s'", cfg.Origin)
		}
	})

	t.Run("default Timeout is 2 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 2*time.Second {
			t.Errorf("expected Timeout to be 2s, got %v", cfg.Timeout)
		}
	})

	t.Run("default fragment is welcome-visitors", func(t *testing.T) {
		t.Parallel()
		if cfg.DefaultFragment != "welcome-visitors" {
			t.Errorf("expected DefaultFragment 'welcome-visitors', got %q", cfg.DefaultFragment)
		}
	})

	t.Run("default pages live under default-pages", func(t *testing.T) {
		t.Parallel()
		if cfg.DefaultPagesPath != "default-pages" {
			t.Errorf("expected DefaultPagesPath 'default-pages', got %q", cfg.DefaultPagesPath)
		}
	})

	t.Run("embedded Tor is off by default", func(t *testing.T) {
		t.Parallel()
		if cfg.UseEmbeddedTor {
			t.Error("expected UseEmbeddedTor to be false")
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:    "relative origin returns ErrInvalidOrigin",
			mutate:  func(c *Config) { c.Origin = "localhost:3000" },
			wantErr: ErrInvalidOrigin,
		},
		{
			name:    "ftp origin returns ErrInvalidOrigin",
			mutate:  func(c *Config) { c.Origin = "ftp://example.org" },
			wantErr: ErrInvalidOrigin,
		},
		{
			name:    "zero timeout returns ErrInvalidTimeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative concurrency returns ErrInvalidConcurrency",
			mutate:  func(c *Config) { c.Concurrency = -1 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "unknown scheme returns ErrInvalidScheme",
			mutate:  func(c *Config) { c.Scheme = "gopher" },
			wantErr: ErrInvalidScheme,
		},
		{
			name: "unknown site scheme returns ErrInvalidScheme",
			mutate: func(c *Config) {
				c.Sites.Sites["wiki.example.org"] = SiteConfig{Scheme: "ws"}
			},
			wantErr: ErrInvalidScheme,
		},
		{
			name:    "negative body size returns ErrInvalidMaxBodySize",
			mutate:  func(c *Config) { c.MaxBodySize = -1 },
			wantErr: ErrInvalidMaxBodySize,
		},
		{
			name: "proxy and embedded tor returns ErrConflictingProxy",
			mutate: func(c *Config) {
				c.ProxyAddress = "127.0.0.1:9050"
				c.UseEmbeddedTor = true
			},
			wantErr: ErrConflictingProxy,
		},
		{
			name:    "https origin is valid",
			mutate:  func(c *Config) { c.Origin = "https://wiki.example.org" },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestConfigApplyFile tests merging a config file onto defaults.
func TestConfigApplyFile(t *testing.T) {
	t.Parallel()

	t.Run("file values override defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(&File{
			Origin:          "https://home.example.org",
			Timeout:         5 * time.Second,
			DefaultFragment: "start",
			Defaults:        SiteConfig{Scheme: "https"},
		})

		if cfg.Origin != "https://home.example.org" {
			t.Errorf("expected origin override, got %q", cfg.Origin)
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("expected timeout override, got %v", cfg.Timeout)
		}
		if cfg.DefaultFragment != "start" {
			t.Errorf("expected fragment override, got %q", cfg.DefaultFragment)
		}
		if cfg.Scheme != "https" {
			t.Errorf("expected scheme override, got %q", cfg.Scheme)
		}
		if cfg.Sites.Sites == nil {
			t.Error("expected Sites map to be initialized")
		}
	})

	t.Run("zero values keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(&File{})

		if cfg.Origin != DefaultOrigin || cfg.Timeout != DefaultTimeout || cfg.Concurrency != DefaultConcurrency {
			t.Errorf("expected defaults to survive an empty file, got %+v", cfg)
		}
	})

	t.Run("nil file is ignored", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(nil)
		if cfg.Sites == nil {
			t.Error("expected Sites to stay non-nil")
		}
	})
}

// TestConfigOriginHost tests host extraction from the origin URL.
func TestConfigOriginHost(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.Origin = "http://Wiki.Example.org:3000/"
	if got := cfg.OriginHost(); got != "wiki.example.org:3000" {
		t.Errorf("expected 'wiki.example.org:3000', got %q", got)
	}
}

// TestFileGetSiteConfig tests the GetSiteConfig method.
func TestFileGetSiteConfig(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults when site not found", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Defaults: SiteConfig{
				Scheme:  "https",
				Headers: map[string]string{"Accept-Language": "en"},
			},
			Sites: map[string]SiteConfig{},
		}

		cfg := file.GetSiteConfig("unknown.example.org")
		if cfg.Scheme != "https" {
			t.Errorf("expected scheme https, got %q", cfg.Scheme)
		}
		if cfg.Headers["Accept-Language"] != "en" {
			t.Errorf("expected default header, got %v", cfg.Headers)
		}
	})

	t.Run("site values override defaults", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Defaults: SiteConfig{
				Scheme:  "https",
				Headers: map[string]string{"X-Default": "value1", "X-Shared": "default"},
			},
			Sites: map[string]SiteConfig{
				"wiki.example.org": {
					Scheme:  "http",
					Headers: map[string]string{"X-Custom": "value2", "X-Shared": "site"},
				},
			},
		}

		cfg := file.GetSiteConfig("wiki.example.org")
		if cfg.Scheme != "http" {
			t.Errorf("expected site scheme http, got %q", cfg.Scheme)
		}
		if cfg.Headers["X-Default"] != "value1" || cfg.Headers["X-Custom"] != "value2" {
			t.Errorf("expected merged headers, got %v", cfg.Headers)
		}
		if cfg.Headers["X-Shared"] != "site" {
			t.Errorf("expected site header to win, got %q", cfg.Headers["X-Shared"])
		}
	})

	t.Run("host lookup ignores case", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Sites: map[string]SiteConfig{"Wiki.Example.org": {Scheme: "https"}},
		}
		if got := file.GetSiteConfig("wiki.example.org").Scheme; got != "https" {
			t.Errorf("expected https, got %q", got)
		}
	})

	t.Run("merging does not mutate defaults", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Defaults: SiteConfig{Headers: map[string]string{"X-A": "1"}},
			Sites: map[string]SiteConfig{
				"a.example.org": {Headers: map[string]string{"X-B": "2"}},
			},
		}
		_ = file.GetSiteConfig("a.example.org")
		if _, ok := file.Defaults.Headers["X-B"]; ok {
			t.Error("site headers leaked into defaults")
		}
	})

	t.Run("config falls back to global scheme", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Scheme = "https"
		if got := cfg.SiteConfig("any.example.org").Scheme; got != "https" {
			t.Errorf("expected https, got %q", got)
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.lineup.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".lineup.yaml")
		content := `origin: "https://home.example.org"
timeout: 3s
concurrency: 4
defaults:
  scheme: https
sites:
  wiki.example.org:
    scheme: http
    headers:
      Accept-Language: "de"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Origin != "https://home.example.org" {
			t.Errorf("expected origin, got %q", cfg.Origin)
		}
		if cfg.Timeout != 3*time.Second {
			t.Errorf("expected timeout 3s, got %v", cfg.Timeout)
		}
		if cfg.Concurrency != 4 {
			t.Errorf("expected concurrency 4, got %d", cfg.Concurrency)
		}
		site, ok := cfg.Sites["wiki.example.org"]
		if !ok {
			t.Fatal("expected wiki.example.org in sites")
		}
		if site.Scheme != "http" || site.Headers["Accept-Language"] != "de" {
			t.Errorf("unexpected site config: %+v", site)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".lineup.yaml")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("initializes nil Sites map", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".lineup.yaml")
		if err := os.WriteFile(configPath, []byte("timeout: 1s\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Sites == nil {
			t.Error("expected Sites map to be initialized")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("defaults: {}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if XDGConfigDir() == "" {
		t.Error("expected non-empty XDG config dir")
	}
	if XDGStateDir() == "" {
		t.Error("expected non-empty XDG state dir")
	}
}
