// Package main provides the entry point for the lineup CLI.
//
// lineup browses a federated wiki as a horizontal sequence of pages. The
// sequence is serialized into a fragment such as
// "welcome-visitors/recent-changes@fed.wiki.org", and links are resolved
// against the local origin, the origin of the page holding the link, and
// the sites in that page's history.
//
// Usage:
//
//	lineup browse [fragment]
//	lineup resolve <title> --from <fragment>
//	lineup export [fragment] --markdown
//
// See --help for all available options.
package main

// main is the entry point for lineup.
func main() {
	Execute()
}
