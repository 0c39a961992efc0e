package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/docpeek"
)

// Ensure SitemapSource implements docpeek.PageSource.
var _ docpeek.PageSource = (*SitemapSource)(nil)

// SitemapSource lists a deployed site's pages from its sitemap.
// Sitemaps are located through robots.txt, falling back to /sitemap.xml.
type SitemapSource struct {
	client *http.Client
}

// NewSitemapSource creates a new SitemapSource with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapSource(client *http.Client) *SitemapSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSource{client: client}
}

// Pages returns the page URLs listed in the site's sitemaps, in sitemap
// order and without duplicates. When baseURL has a path, only pages
// below that path are returned. A site without a sitemap has no pages.
func (s *SitemapSource) Pages(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docpeek.Errorf(docpeek.EINVALID, "invalid base URL: %v", err)
	}

	prefix := base.Path
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	root := *base
	root.Path, root.RawQuery, root.Fragment = "", "", ""

	locations := s.sitemapLocations(ctx, &root)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seenSitemaps := make(map[string]bool)
	seenPages := make(map[string]bool)
	pages := []string{}
	for _, loc := range locations {
		urls, err := s.readSitemap(ctx, loc, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if seenPages[u] || !underPrefix(u, prefix) {
				continue
			}
			seenPages[u] = true
			pages = append(pages, u)
		}
	}

	return pages, nil
}

// sitemapLocations returns the sitemaps advertised by robots.txt, or the
// conventional /sitemap.xml when robots.txt names none.
func (s *SitemapSource) sitemapLocations(ctx context.Context, root *url.URL) []string {
	fallback := []string{root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}

	body, err := s.get(ctx, root.ResolveReference(&url.URL{Path: "/robots.txt"}).String())
	if err != nil {
		return fallback
	}
	defer body.Close()

	var locations []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) > len("sitemap:") && strings.EqualFold(line[:len("sitemap:")], "sitemap:") {
			if loc := strings.TrimSpace(line[len("sitemap:"):]); loc != "" {
				locations = append(locations, loc)
			}
		}
	}
	if len(locations) == 0 {
		return fallback
	}
	return locations
}

// readSitemap returns the page URLs of a urlset, following sitemap indexes.
// A missing sitemap contributes no pages.
func (s *SitemapSource) readSitemap(ctx context.Context, loc string, seen map[string]bool) ([]string, error) {
	if seen[loc] {
		return nil, nil
	}
	seen[loc] = true

	body, err := s.get(ctx, loc)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, docpeek.Errorf(docpeek.EINVALID, "parsing sitemap %s: %v", loc, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, docpeek.Errorf(docpeek.EINVALID, "empty sitemap %s", loc)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, child := range locs(root, "sitemap") {
			nested, err := s.readSitemap(ctx, child, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, nested...)
		}
		return urls, nil
	}

	return locs(root, "url"), nil
}

func (s *SitemapSource) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, docpeek.Errorf(docpeek.EUNAVAILABLE, "fetch %s: %v", target, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, docpeek.Errorf(docpeek.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// underPrefix reports whether rawURL's path lies below prefix, which must
// be empty or end with a slash.
func underPrefix(rawURL, prefix string) bool {
	if prefix == "" || prefix == "/" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasPrefix(u.Path, prefix) || u.Path+"/" == prefix
}
