// Package goquery implements docpeek's document parsing and link
// extraction on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docpeek"
)

// Markers embedded in built pages.
const (
	// AbstractSelector matches the curated summary placed by the build
	// right after a heading. The summary is the value of AbstractAttr.
	AbstractSelector = "span[data-abstract]"
	AbstractAttr     = "data-abstract"

	// skipSelector matches content that must never be shown as a preview:
	// highlighted code, heading permalinks and code line-range markers.
	skipSelector = "code[class], .anchor, span[data-attrs]"
)

// Ensure Parser implements docpeek.Parser at compile time.
var _ docpeek.Parser = (*Parser)(nil)

// Parser parses built pages into navigable documents.
// Parser is safe for concurrent use by multiple goroutines.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses body as HTML.
func (p *Parser) Parse(body string) (docpeek.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, docpeek.Errorf(docpeek.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// Ensure Document implements docpeek.Document at compile time.
var _ docpeek.Document = (*Document)(nil)

// Document is a parsed page.
type Document struct {
	doc *goquery.Document
}

// ElementByID returns the element whose id attribute equals id exactly.
// The id is compared as a string rather than spliced into a selector, so
// ids containing CSS metacharacters are matched literally.
func (d *Document) ElementByID(id string) docpeek.Element {
	sel := d.doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
	if sel.Length() == 0 {
		return nil
	}
	return d.element(sel)
}

// HeadingAbstract returns the abstract marker in the element right after
// the article's h1. Pages without an article element use the first h1 of
// the page instead.
func (d *Document) HeadingAbstract() (string, bool) {
	sel := d.doc.Find("article h1 + *").First()
	if sel.Length() == 0 {
		sel = d.doc.Find("h1 + *").First()
	}
	if sel.Length() == 0 {
		return "", false
	}
	return d.element(sel).Abstract()
}

// FirstParagraph returns the first p element of the page.
func (d *Document) FirstParagraph() docpeek.Element {
	sel := d.doc.Find("p").First()
	if sel.Length() == 0 {
		return nil
	}
	return d.element(sel)
}

func (d *Document) element(sel *goquery.Selection) *Element {
	return &Element{sel: sel}
}

// Ensure Element implements docpeek.Element at compile time.
var _ docpeek.Element = (*Element)(nil)

// Element is a single element of a parsed page.
type Element struct {
	sel *goquery.Selection
}

// Next returns the next element sibling.
func (e *Element) Next() docpeek.Element {
	next := e.sel.Next()
	if next.Length() == 0 {
		return nil
	}
	return &Element{sel: next}
}

// Abstract returns the abstract marker's value, as decoded by the HTML
// parser, from the element itself or its first descendant carrying one.
// The value is plain text and is returned verbatim.
func (e *Element) Abstract() (string, bool) {
	marker := e.sel.Filter(AbstractSelector)
	if marker.Length() == 0 {
		marker = e.sel.Find(AbstractSelector)
	}
	value, ok := marker.First().Attr(AbstractAttr)
	if !ok {
		return "", false
	}
	return value, true
}

// Skippable reports whether the element is or contains code, a heading
// permalink or a line-range marker.
func (e *Element) Skippable() bool {
	if e.sel.Is("pre, " + skipSelector) {
		return true
	}
	return e.sel.Find(skipSelector).Length() > 0
}

// Text returns the element's rendered text.
func (e *Element) Text() string {
	return renderText(e.sel.Nodes)
}
