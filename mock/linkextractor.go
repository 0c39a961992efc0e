package mock

import "github.com/fwojciec/docpeek"

var _ docpeek.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docpeek.LinkExtractor.
type LinkExtractor struct {
	ExtractPreviewLinksFn func(html string, pageURL string) ([]docpeek.PreviewLink, error)
}

func (e *LinkExtractor) ExtractPreviewLinks(html string, pageURL string) ([]docpeek.PreviewLink, error) {
	return e.ExtractPreviewLinksFn(html, pageURL)
}
