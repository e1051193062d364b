// Package lineup owns the ordered sequence of panels a reader is browsing.
//
// A Lineup is populated from a URL fragment such as
// "#welcome-visitors/notes@wiki.example.org", fetches the pages of its
// panels concurrently, and is mutated by link activations: a plain
// activation drops every panel right of the clicked one before appending
// the resolved panel, a branch activation appends without dropping.
// After every mutation the lineup serializes back into exactly one
// fragment, which is the only navigation state that survives a reload.
package lineup
