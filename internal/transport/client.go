package transport

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/proxy"
)

// HeaderFunc returns the extra headers to send to a host.
type HeaderFunc func(host string) map[string]string

// clientOptions collects the settings for NewHTTPClient.
type clientOptions struct {
	userAgent    string
	proxyAddress string
	headers      HeaderFunc
}

// ClientOption configures NewHTTPClient.
type ClientOption func(*clientOptions)

// WithUserAgent sets the User-Agent header of every request.
func WithUserAgent(ua string) ClientOption {
	return func(o *clientOptions) {
		o.userAgent = ua
	}
}

// WithProxy routes every connection through the SOCKS5 proxy at address.
func WithProxy(address string) ClientOption {
	return func(o *clientOptions) {
		o.proxyAddress = address
	}
}

// WithHeaders sets the per-host header lookup.
func WithHeaders(fn HeaderFunc) ClientOption {
	return func(o *clientOptions) {
		o.headers = fn
	}
}

// NewHTTPClient creates the client used by the prober.
//
// The client has no overall Timeout: each probe bounds itself with a
// context deadline so that a timed-out request is cancelled, not left
// running in the background.
func NewHTTPClient(opts ...ClientOption) (*http.Client, error) {
	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}

	base := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     30 * time.Second,
	}

	if o.proxyAddress != "" {
		dialContext, err := socksDialContext(o.proxyAddress)
		if err != nil {
			return nil, err
		}
		base.Proxy = nil
		base.DialContext = dialContext
	}

	return &http.Client{
		Transport: &headerInjectingTransport{
			base:      base,
			userAgent: o.userAgent,
			headers:   o.headers,
		},
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}, nil
}

// socksDialContext returns a DialContext function that goes through the
// SOCKS5 proxy at address.
func socksDialContext(address string) (func(ctx context.Context, network, addr string) (net.Conn, error), error) {
	if !isValidProxyAddress(address) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProxyAddress, address)
	}

	dialer, err := proxy.SOCKS5("tcp", address, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}

	if cd, ok := dialer.(proxy.ContextDialer); ok {
		return cd.DialContext, nil
	}

	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		type dialResult struct {
			conn net.Conn
			err  error
		}
		resultCh := make(chan dialResult, 1)
		go func() {
			conn, err := dialer.Dial(network, addr)
			resultCh <- dialResult{conn, err}
		}()
		select {
		case r := <-resultCh:
			return r.conn, r.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}, nil
}

// isValidProxyAddress checks that address is "host:port" with a port in 1..65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}

// headerInjectingTransport adds the User-Agent and per-host headers to
// every request, redirects included.
type headerInjectingTransport struct {
	base      http.RoundTripper
	userAgent string
	headers   HeaderFunc
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if t.userAgent != "" && clone.Header.Get("User-Agent") == "" {
		clone.Header.Set("User-Agent", t.userAgent)
	}

	if t.headers != nil {
		for key, value := range t.headers(clone.URL.Host) {
			clone.Header.Set(key, value)
		}
	}

	return t.base.RoundTrip(clone)
}
