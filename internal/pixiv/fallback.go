package pixiv

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fallback extraction: when the ajax APIs return an error page instead
// of JSON, the needed data is recovered from the regular artwork page
// markup. Less reliable than the APIs, but it keeps a run alive when
// the session is degraded.

var (
	cdnImageRe     = regexp.MustCompile(`i\.pximg\.net/(?:c/[^"']*?/)?(?:custom-thumb|img-master|img-original)/`)
	masterSuffixRe = regexp.MustCompile(`_(?:master|custom)\d+\.(jpg|png|gif)`)
	thumbSegmentRe = regexp.MustCompile(`/c/[0-9x_a-z]+/`)
)

// extractTitle pulls the artwork title out of page markup.
//
// Preference order: the main h1 heading, then the document title
// stripped of the " - pixiv" suffix.
func extractTitle(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	if h1 := doc.Find("main h1").First(); h1.Length() > 0 {
		if title := strings.TrimSpace(h1.Text()); title != "" {
			return title, nil
		}
	}

	if t := doc.Find("title").First(); t.Length() > 0 {
		title, _, _ := strings.Cut(t.Text(), " - ")
		if title = strings.TrimSpace(title); title != "" {
			return title, nil
		}
	}

	return "", errors.New("no title in page markup")
}

// extractImageURLs pulls image URLs out of page markup and rewrites
// them to original quality.
//
// Candidate sources are img tags whose src or data-src points at the
// pixiv image CDN. Thumbnail and preview URLs are rewritten to the
// original-quality form; duplicates are dropped while preserving first
// occurrence order.
func extractImageURLs(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var urls []string
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || !cdnImageRe.MatchString(src) {
			src, ok = sel.Attr("data-src")
			if !ok || !cdnImageRe.MatchString(src) {
				return
			}
		}

		original := rewriteToOriginal(src)
		if _, dup := seen[original]; dup {
			return
		}
		seen[original] = struct{}{}
		urls = append(urls, original)
	})

	return urls, nil
}

// rewriteToOriginal converts a CDN thumbnail or preview URL into the
// original-quality URL.
//
//	.../c/250x250_80_a2/custom-thumb/img/..._p0_custom1200.jpg
//	.../c/600x1200_90/img-master/img/..._p0_master1200.jpg
//
// both become
//
//	.../img-original/img/..._p0.jpg
func rewriteToOriginal(src string) string {
	src = thumbSegmentRe.ReplaceAllString(src, "/")
	src = strings.ReplaceAll(src, "custom-thumb", "img-original")
	src = strings.ReplaceAll(src, "img-master", "img-original")
	src = masterSuffixRe.ReplaceAllString(src, ".$1")
	return src
}
