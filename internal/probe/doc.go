// Package probe performs bounded-time existence probes for wiki pages.
//
// A probe asks one source for one slug and answers with the page or with
// nothing. Network errors, non-2xx responses, undecodable bodies and
// timeouts all collapse into "absent" at the Probe boundary; Fetch keeps
// the three-way Outcome (hit, miss, timed out) for callers that log or
// test it.
//
// Two rules are applied before and after the request:
//   - ghost sources answer absent immediately, without I/O
//   - a miss on the local origin is retried against the default pages
//
// # Usage
//
//	p := probe.New(client, loc, probe.WithTimeout(2*time.Second))
//	page := p.Probe(ctx, model.SourceLocal, "welcome-visitors")
//	if page == nil {
//	    // not found anywhere we looked
//	}
package probe
