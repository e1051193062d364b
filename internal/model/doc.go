// Package model defines the core data structures shared by the lineup packages.
//
// This package contains the following main types:
//   - Panel: One visible unit of browsing state (source, slug, page)
//   - Page: A fetched wiki page with its story and journal
//   - Item: One content item of a page story
//   - Source: Where a page lives (local origin, default pages, remote host, ghost)
//
// The models are kept in their own package so that the locator, prober,
// resolver, lineup and render packages can share them without import cycles.
// Page and Item decode directly from the wiki's JSON page format.
package model
