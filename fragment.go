package docpeek

import (
	"context"
	"strings"
)

// Element is a node of a parsed page, as seen by the resolver.
type Element interface {
	// Next returns the element immediately following this one among its
	// siblings, or nil if there is none.
	Next() Element

	// Abstract returns the text of the abstract marker carried by this
	// element or one of its descendants. The boolean reports whether a
	// marker was present at all, even if its text is empty.
	Abstract() (text string, ok bool)

	// Skippable reports whether the element holds content that must never
	// be shown as a preview: a code block, a heading permalink marker or
	// a code line-range marker.
	Skippable() bool

	// Text returns the element's rendered plain text.
	Text() string
}

// Document is a parsed page the resolver can navigate.
type Document interface {
	// ElementByID returns the element whose id equals id, or nil.
	ElementByID(id string) Element

	// HeadingAbstract returns the abstract marker placed immediately after
	// the page's top-level heading, if any.
	HeadingAbstract() (text string, ok bool)

	// FirstParagraph returns the first paragraph of the page, or nil.
	FirstParagraph() Element
}

// Parser turns a fetched body into a Document.
type Parser interface {
	// Parse returns an EINVALID error when body cannot be parsed.
	Parse(body string) (Document, error)
}

// Previewer returns the preview text for a key.
//
// A missing preview is always reported as an error, never as an empty
// string with a nil error: EUNAVAILABLE when the page could not be
// fetched, EINVALID when it could not be parsed, and ENOTFOUND when the
// fragment could not be resolved.
type Previewer interface {
	Preview(ctx context.Context, key PreviewKey) (string, error)
}

// Resolve selects the preview text for anchor within doc.
//
// With an anchor, the element carrying that id is located and the element
// right after it decides the result: its abstract marker if it has one,
// nothing if it is code or a permalink marker, otherwise its text. An
// anchor that is not in the document yields no preview; there is no
// fallback to the page-level preview.
//
// Without an anchor, the abstract marker right after the top-level
// heading is used, falling back to the first paragraph.
func Resolve(doc Document, anchor string) (string, bool) {
	if anchor != "" {
		return resolveAnchor(doc, anchor)
	}

	if text, ok := doc.HeadingAbstract(); ok {
		return nonEmpty(text)
	}

	p := doc.FirstParagraph()
	if p == nil {
		return "", false
	}
	return nonEmpty(p.Text())
}

func resolveAnchor(doc Document, anchor string) (string, bool) {
	target := doc.ElementByID(anchor)
	if target == nil {
		return "", false
	}

	next := target.Next()
	if next == nil {
		return "", false
	}

	if text, ok := next.Abstract(); ok {
		return nonEmpty(text)
	}
	if next.Skippable() {
		return "", false
	}
	return nonEmpty(next.Text())
}

func nonEmpty(text string) (string, bool) {
	text = strings.TrimSpace(text)
	return text, text != ""
}
