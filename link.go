package docpeek

import "context"

// PreviewLink is a link on a page that carries a preview target.
//
// The preview target lives in its own attribute rather than in href,
// because the build may rewrite href for cross-directory navigation.
type PreviewLink struct {
	Key  PreviewKey
	Href string
	Text string
}

// LinkExtractor finds previewable links in a page.
type LinkExtractor interface {
	// ExtractPreviewLinks parses html and returns its previewable links in
	// document order, with keys resolved against pageURL.
	ExtractPreviewLinks(html string, pageURL string) ([]PreviewLink, error)
}

// PageSource lists the pages of a site that may contain previewable links.
type PageSource interface {
	// Pages returns page URLs under baseURL.
	Pages(ctx context.Context, baseURL string) ([]string, error)
}
