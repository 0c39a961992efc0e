package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docpeek"
)

// PreviewAttr carries a link's preview target: a page reference with an
// optional #anchor, resolved against the page the link is on.
const PreviewAttr = "data-preview"

// Ensure LinkExtractor implements docpeek.LinkExtractor at compile time.
var _ docpeek.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor finds links carrying a preview target.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractPreviewLinks returns every a[data-preview] element of the page in
// document order. Links with an empty or unparseable target are skipped.
// Duplicates are kept; callers decide how to dedupe keys.
func (e *LinkExtractor) ExtractPreviewLinks(html string, pageURL string) ([]docpeek.PreviewLink, error) {
	if _, err := url.Parse(pageURL); err != nil {
		return nil, docpeek.Errorf(docpeek.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docpeek.Errorf(docpeek.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []docpeek.PreviewLink
	doc.Find("a[" + PreviewAttr + "]").Each(func(_ int, sel *goquery.Selection) {
		target := strings.TrimSpace(sel.AttrOr(PreviewAttr, ""))
		if target == "" {
			return
		}

		key, err := docpeek.NewPreviewKey(pageURL, target)
		if err != nil {
			return
		}

		links = append(links, docpeek.PreviewLink{
			Key:  key,
			Href: sel.AttrOr("href", ""),
			Text: collapseSpace(sel.Text()),
		})
	})

	return links, nil
}
