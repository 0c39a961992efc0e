package docpeek

import (
	"net/url"
	"strings"
)

// PreviewKey identifies a hover target: the resolved URL of the target
// page plus an optional anchor naming a section of it.
//
// Keys are compared by their String form with no further normalization,
// so "/a/" and "/a", or differing query strings, are distinct keys.
type PreviewKey struct {
	URL    string
	Anchor string
}

// String returns the cache key form: the URL, followed by "#anchor"
// when an anchor is present.
func (k PreviewKey) String() string {
	if k.Anchor == "" {
		return k.URL
	}
	return k.URL + "#" + k.Anchor
}

// NewPreviewKey resolves a link's preview target against the URL of the
// page the link appears on.
//
// The target is split at '#': the first part is the page reference and
// the second is the anchor. The page URL's query and fragment are
// dropped before resolution, so a target of "#setup" refers to the
// current page's path.
func NewPreviewKey(pageURL, target string) (PreviewKey, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return PreviewKey{}, Errorf(EINVALID, "invalid page URL: %v", err)
	}
	base.RawQuery = ""
	base.ForceQuery = false
	base.Fragment = ""
	base.RawFragment = ""

	page, anchor := target, ""
	if strings.Contains(target, "#") {
		parts := strings.Split(target, "#")
		page, anchor = parts[0], parts[1]
	}

	ref, err := url.Parse(page)
	if err != nil {
		return PreviewKey{}, Errorf(EINVALID, "invalid preview target %q: %v", target, err)
	}

	return PreviewKey{
		URL:    base.ResolveReference(ref).String(),
		Anchor: anchor,
	}, nil
}
