// Package render turns the story of a panel's page into display fragments.
//
// Paragraph items are rendered here: "[[Title]]" becomes an internal link
// tagged with the owning panel, "[url words]" becomes an external link.
// Every other item type is looked up in a Registry of type renderers.
// An item whose type has no renderer, or whose renderer fails, becomes a
// placeholder fragment naming the type, so no item is ever dropped.
package render
