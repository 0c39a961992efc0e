// Package hover resolves hover previews and drives the tooltip that shows
// them.
package hover

import (
	"context"

	"github.com/fwojciec/docpeek"
)

// Ensure Previewer implements docpeek.Previewer at compile time.
var _ docpeek.Previewer = (*Previewer)(nil)

// Previewer resolves preview text through the cache, fetching and parsing
// the target page on a miss.
//
// Only successful, non-empty previews are cached. A failed fetch or a
// fragment that cannot be resolved is not remembered, so hovering the
// same link again tries again.
type Previewer struct {
	Cache   docpeek.Cache
	Fetcher docpeek.Fetcher
	Parser  docpeek.Parser
}

// Preview returns the preview text for key.
func (p *Previewer) Preview(ctx context.Context, key docpeek.PreviewKey) (string, error) {
	cacheKey := key.String()
	if text, ok := p.Cache.Get(cacheKey); ok {
		return text, nil
	}

	body, err := p.Fetcher.Fetch(ctx, key.URL)
	if err != nil {
		if docpeek.ErrorCode(err) == docpeek.EINTERNAL {
			return "", docpeek.Errorf(docpeek.EUNAVAILABLE, "fetch %s: %v", key.URL, err)
		}
		return "", err
	}

	doc, err := p.Parser.Parse(body)
	if err != nil {
		return "", docpeek.Errorf(docpeek.EINVALID, "parse %s: %s", key.URL, docpeek.ErrorMessage(err))
	}

	text, ok := docpeek.Resolve(doc, key.Anchor)
	if !ok {
		return "", docpeek.Errorf(docpeek.ENOTFOUND, "no preview for %s", cacheKey)
	}

	p.Cache.Set(cacheKey, text)
	return text, nil
}
