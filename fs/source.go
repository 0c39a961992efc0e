package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/docpeek"
)

// DefaultPattern matches every HTML page of a site.
const DefaultPattern = "**/*.html"

// Ensure PageSource implements docpeek.PageSource at compile time.
var _ docpeek.PageSource = (*PageSource)(nil)

// PageSource lists the pages of a site directory whose paths match Pattern.
type PageSource struct {
	Root    string
	Pattern string
}

// Pages returns the URLs of matching files, joined onto baseURL and sorted.
// An index.html file is listed as its directory URL.
func (s *PageSource) Pages(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docpeek.Errorf(docpeek.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	pattern := s.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, docpeek.Errorf(docpeek.EINVALID, "invalid page pattern %q", pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(s.Root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, docpeek.Errorf(docpeek.EUNAVAILABLE, "listing %s: %v", s.Root, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages := make([]string, 0, len(matches))
	for _, m := range matches {
		switch {
		case m == "index.html":
			m = ""
		case path.Base(m) == "index.html":
			m = strings.TrimSuffix(m, "index.html")
		}
		pages = append(pages, base.ResolveReference(&url.URL{Path: m}).String())
	}
	slices.Sort(pages)
	return pages, nil
}
