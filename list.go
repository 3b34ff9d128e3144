package handlekit

import (
	"strings"

	"golang.org/x/net/html"
)

// scrapeListing implements directory listing over HTTP. Index endpoints
// serve markup rather than a structured listing, so the body is tokenized
// and every anchor target becomes a candidate child name. A candidate is
// kept only when the joined child location reports that it exists, which
// filters out parent links, sort toggles and anything else that is not a
// member of the listed directory.
//
// The tokenizer keeps the scrape tolerant of malformed markup without
// being a conformant parser; entries the server renders outside anchors
// are missed, by intent. Scanning stops at the closing html tag or at
// stream end, and any fetch failure yields nil rather than an error,
// since listing is an advisory query.
func (r *Resolver) scrapeListing(dirURL string) []string {
	resp, err := r.get(dirURL)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil
	}

	var names []string
	z := html.NewTokenizer(resp.Body)
	for {
		switch z.Next() {
		case html.ErrorToken:
			// EOF or a mid-stream read failure; either way we are done.
			return names
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "html" {
				return names
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "a" || !hasAttr {
				continue
			}
			candidate := listingCandidate(anchorHref(z))
			if candidate == "" {
				continue
			}
			child := r.NewChildLocation(dirURL, candidate)
			if !child.Exists() || child.Name() == "" {
				continue
			}
			names = append(names, child.Name())
			if r.cfg.MaxListEntries > 0 && len(names) >= r.cfg.MaxListEntries {
				return names
			}
		}
	}
}

// anchorHref pulls the href attribute off the current anchor tag.
func anchorHref(z *html.Tokenizer) string {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "href" {
			return string(val)
		}
		if !more {
			return ""
		}
	}
}

// listingCandidate trims an anchor target down to a joinable child name.
// Query-only and fragment-only targets point back at the listing itself;
// a trailing slash marks a subdirectory and is dropped so the child name
// comes out clean.
func listingCandidate(href string) string {
	if href == "" || href[0] == '?' || href[0] == '#' {
		return ""
	}
	return strings.TrimSuffix(href, "/")
}
