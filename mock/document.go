package mock

import "github.com/fwojciec/docpeek"

var _ docpeek.Parser = (*Parser)(nil)

// Parser is a mock implementation of docpeek.Parser.
type Parser struct {
	ParseFn func(body string) (docpeek.Document, error)
}

func (p *Parser) Parse(body string) (docpeek.Document, error) {
	return p.ParseFn(body)
}

var _ docpeek.Document = (*Document)(nil)

// Document is a mock implementation of docpeek.Document.
type Document struct {
	ElementByIDFn     func(id string) docpeek.Element
	HeadingAbstractFn func() (string, bool)
	FirstParagraphFn  func() docpeek.Element
}

func (d *Document) ElementByID(id string) docpeek.Element {
	return d.ElementByIDFn(id)
}

func (d *Document) HeadingAbstract() (string, bool) {
	return d.HeadingAbstractFn()
}

func (d *Document) FirstParagraph() docpeek.Element {
	return d.FirstParagraphFn()
}

var _ docpeek.Element = (*Element)(nil)

// Element is a mock implementation of docpeek.Element.
type Element struct {
	NextFn      func() docpeek.Element
	AbstractFn  func() (string, bool)
	SkippableFn func() bool
	TextFn      func() string
}

func (e *Element) Next() docpeek.Element {
	return e.NextFn()
}

func (e *Element) Abstract() (string, bool) {
	return e.AbstractFn()
}

func (e *Element) Skippable() bool {
	return e.SkippableFn()
}

func (e *Element) Text() string {
	return e.TextFn()
}
