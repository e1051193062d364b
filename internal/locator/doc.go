// Package locator maps a (source, slug) pair to the address of its page JSON.
//
// The mapping is pure: no I/O happens here. Given an origin of
// http://localhost:3000 the addresses are:
//
//	local              http://localhost:3000/{slug}.json
//	default            http://localhost:3000/default-pages/{slug}.json
//	wiki.example.org   http://wiki.example.org/{slug}.json
//
// Ghost sources have no address; asking for one is a programming error
// reported as ErrGhostSource.
package locator
