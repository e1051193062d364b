// Package transport builds the HTTP clients used to fetch wiki pages.
//
// Remote wiki sites are plain HTTP(S) servers, but some are published as
// Tor onion services. This package provides:
//   - NewHTTPClient: an http.Client that injects the User-Agent and the
//     per-site headers from the config file, optionally dialing through a
//     SOCKS5 proxy
//   - EmbeddedTor: a tornago-managed Tor daemon whose SOCKS port can serve
//     as that proxy
//   - IsOnionHost / IsValidV3Address: checks applied to .onion sources
//     before any request is made
//
// Clients are created once and passed to the prober; nothing here keeps
// global state.
package transport
