// Package fs serves pages from a built site directory on disk, so a site
// can be checked before it is deployed.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/fwojciec/docpeek"
)

// Ensure Fetcher implements docpeek.Fetcher at compile time.
var _ docpeek.Fetcher = (*Fetcher)(nil)

// Fetcher reads pages from a site directory. Root holds the site as it is
// served below the path Prefix, so a request for Prefix+"a/b.html" reads
// Root/a/b.html. The scheme and host of requested URLs are ignored.
type Fetcher struct {
	Root   string
	Prefix string
}

// NewFetcher returns a Fetcher for the site at root, served at baseURL.
func NewFetcher(root, baseURL string) (*Fetcher, error) {
	f := &Fetcher{Root: root, Prefix: "/"}
	if baseURL == "" {
		return f, nil
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, docpeek.Errorf(docpeek.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}
	f.Prefix = u.Path
	if !strings.HasSuffix(f.Prefix, "/") {
		f.Prefix += "/"
	}
	return f, nil
}

// Fetch returns the file behind rawURL. A missing file is ENOTFOUND.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := URLToPath(rawURL, f.Prefix)
	if err != nil {
		return "", err
	}

	data, err := iofs.ReadFile(os.DirFS(f.Root), name)
	if errors.Is(err, iofs.ErrNotExist) {
		return "", docpeek.Errorf(docpeek.ENOTFOUND, "page not found: %s", name)
	} else if err != nil {
		return "", docpeek.Errorf(docpeek.EUNAVAILABLE, "reading %s: %v", name, err)
	}
	return string(data), nil
}

// Close is a no-op.
func (f *Fetcher) Close() error { return nil }

// URLToPath maps a page URL to a slash-separated path below the site root
// served at prefix. The root and any path with a trailing slash map to that
// directory's index.html. A URL outside prefix is ENOTFOUND.
func URLToPath(rawURL, prefix string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", docpeek.Errorf(docpeek.EINVALID, "invalid page URL %q: %v", rawURL, err)
	}

	p := u.Path
	if p == "" {
		p = "/"
	}
	if prefix == "" {
		prefix = "/"
	}
	if p+"/" == prefix {
		p = prefix
	}
	rel, ok := strings.CutPrefix(p, prefix)
	if !ok {
		return "", docpeek.Errorf(docpeek.ENOTFOUND, "page outside site: %s", u.Path)
	}
	if rel == "" || strings.HasSuffix(rel, "/") {
		rel += "index.html"
	}
	p = rel

	if !iofs.ValidPath(p) || p != path.Clean(p) {
		return "", docpeek.Errorf(docpeek.EINVALID, "page path escapes site root: %s", u.Path)
	}
	return p, nil
}
