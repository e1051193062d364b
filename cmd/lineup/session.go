package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nao1215/lineup/internal/config"
	"github.com/nao1215/lineup/internal/lineup"
	"github.com/nao1215/lineup/internal/locator"
	"github.com/nao1215/lineup/internal/probe"
	"github.com/nao1215/lineup/internal/resolver"
	"github.com/nao1215/lineup/internal/transport"
)

// session holds the components shared by the subcommands that talk to
// wiki origins.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	locator  *locator.Locator
	prober   *probe.Prober
	resolver *resolver.Resolver
	tor      *transport.EmbeddedTor
}

// newSession wires the locator, HTTP client, prober, and resolver for cfg.
// With UseEmbeddedTor it starts the Tor daemon first; Close stops it.
func newSession(ctx context.Context, cfg *config.Config, logger *slog.Logger, status io.Writer) (*session, error) {
	loc, err := locator.New(cfg.Origin,
		locator.WithDefaultPagesPath(cfg.DefaultPagesPath),
		locator.WithSchemeFunc(func(host string) string {
			return cfg.SiteConfig(host).Scheme
		}),
	)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: logger, locator: loc}

	clientOpts := []transport.ClientOption{
		transport.WithUserAgent(cfg.UserAgent),
		transport.WithHeaders(func(host string) map[string]string {
			return cfg.SiteConfig(host).Headers
		}),
	}
	if cfg.ProxyAddress != "" {
		clientOpts = append(clientOpts, transport.WithProxy(cfg.ProxyAddress))
	}
	if cfg.UseEmbeddedTor {
		opt, err := s.startTor(ctx, status)
		if err != nil {
			return nil, err
		}
		clientOpts = append(clientOpts, opt)
	}

	client, err := transport.NewHTTPClient(clientOpts...)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	s.prober = probe.New(client, loc,
		probe.WithTimeout(cfg.Timeout),
		probe.WithMaxBodySize(cfg.MaxBodySize),
		probe.WithLogger(logger),
	)
	s.resolver = resolver.New(s.prober, loc,
		resolver.WithLocalHost(cfg.OriginHost()),
		resolver.WithLogger(logger),
	)
	return s, nil
}

func (s *session) startTor(ctx context.Context, status io.Writer) (transport.ClientOption, error) {
	fmt.Fprintln(status, "Starting embedded Tor daemon...")
	fmt.Fprintf(status, "This may take 1-3 minutes while Tor bootstraps.\n\n")

	s.tor = transport.NewEmbeddedTor(transport.WithStartupTimeout(s.cfg.TorStartupTimeout))
	if err := s.tor.Start(ctx); err != nil {
		s.tor = nil
		return nil, fmt.Errorf("failed to start embedded Tor: %w", err)
	}
	s.logger.Info("embedded Tor daemon started", "socksAddr", s.tor.SocksAddr())

	opt, err := s.tor.ClientOption()
	if err != nil {
		s.Close()
		return nil, err
	}
	return opt, nil
}

// Close stops the embedded Tor daemon, if one was started.
func (s *session) Close() {
	if s.tor == nil {
		return
	}
	if err := s.tor.Stop(); err != nil {
		s.logger.Error("failed to stop embedded Tor", "error", err)
	}
	s.tor = nil
}

// newLineup returns an empty lineup configured from the session.
func (s *session) newLineup() *lineup.Lineup {
	return lineup.New(s.locator,
		lineup.WithDefaultFragment(s.cfg.DefaultFragment),
		lineup.WithConcurrency(s.cfg.Concurrency),
		lineup.WithLogger(s.logger),
	)
}

// loadLineup populates a lineup from fragment and fetches all its pages.
func (s *session) loadLineup(ctx context.Context, fragment string) (*lineup.Lineup, error) {
	l := s.newLineup()
	l.Populate(fragment)
	if err := l.Load(ctx, s.prober); err != nil {
		return nil, fmt.Errorf("failed to load lineup: %w", err)
	}
	return l, nil
}

// fragmentArg accepts a bare fragment or a full wiki URL and returns the
// fragment part.
func fragmentArg(arg string) string {
	if i := strings.IndexByte(arg, '#'); i >= 0 {
		return arg[i:]
	}
	return arg
}
