// Package markdown turns lesson sources into HTML fragments. It merges the
// overview and assessment documents, rewrites the two authoring conventions
// the renderer does not handle (2-space nested lists and fenced code nested
// in list items) and renders through goldmark.
package markdown
