package pixiv

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	httpclient "github.com/handiism/pixiv-downloader/internal/http"
	"github.com/handiism/pixiv-downloader/internal/model"
	"github.com/handiism/pixiv-downloader/internal/pixiv/dto"
)

// DefaultBaseURL is the pixiv origin used for page and ajax requests.
const DefaultBaseURL = "https://www.pixiv.net"

// ErrNoImages is returned when neither the pages API nor the HTML
// fallback yields any image URL for an artwork.
//
// This typically means the post is private, deleted, or the session is
// not allowed to see it.
var ErrNoImages = errors.New("no images found")

// ErrUnrecognizedURL is returned by Classify for links that are neither
// an artwork post nor a user profile.
var ErrUnrecognizedURL = errors.New("unrecognized pixiv URL")

// Kind is the result of classifying an input URL.
type Kind int

const (
	// KindArtwork is a single post link (/artworks/<id>).
	KindArtwork Kind = iota

	// KindUser is a user profile link (/users/<id>).
	KindUser
)

var (
	artworkURLRe = regexp.MustCompile(`/artworks/(\d+)`)
	userURLRe    = regexp.MustCompile(`/users/(\d+)`)
)

// Classify determines whether rawURL points at a single artwork or a
// user gallery and extracts the numeric ID.
//
// Returns ErrUnrecognizedURL for anything else.
func Classify(rawURL string) (Kind, string, error) {
	if m := artworkURLRe.FindStringSubmatch(rawURL); m != nil {
		return KindArtwork, m[1], nil
	}
	if m := userURLRe.FindStringSubmatch(rawURL); m != nil {
		return KindUser, m[1], nil
	}
	return 0, "", fmt.Errorf("%w: %s", ErrUnrecognizedURL, rawURL)
}

// Resolver fetches artwork and gallery metadata from pixiv.
//
// For each artwork the Resolver tries the structured ajax APIs first
// and falls back to scraping the regular page markup when the APIs are
// unavailable (see fallback.go). Both sources are hidden behind the
// same methods, so callers never care which one produced the data.
//
// Example usage:
//
//	r := pixiv.NewResolver(client)
//
//	kind, id, err := pixiv.Classify(inputURL)
//	switch kind {
//	case pixiv.KindArtwork:
//	    art, err := r.Artwork(ctx, id)
//	case pixiv.KindUser:
//	    gallery, err := r.Gallery(ctx, id)
//	}
type Resolver struct {
	client *httpclient.Client

	// BaseURL is the site origin. Overridable for tests.
	BaseURL string
}

// NewResolver creates a Resolver on top of the given HTTP client.
func NewResolver(client *httpclient.Client) *Resolver {
	return &Resolver{
		client:  client,
		BaseURL: DefaultBaseURL,
	}
}

// ArtworkPageURL returns the public page URL for a post ID, which also
// serves as the Referer for its API and image requests.
func (r *Resolver) ArtworkPageURL(id string) string {
	return r.BaseURL + "/artworks/" + id
}

// Artwork resolves the title and ordered image URLs of a single post.
//
// Resolution order:
//  1. /ajax/illust/<id> for the title
//  2. /ajax/illust/<id>/pages for the image URLs
//  3. the page markup for whichever of the two the APIs did not deliver
//
// Returns ErrNoImages (wrapped) when, after the full fallback chain, no
// image URL could be found. A missing title alone is not an error; the
// artwork then carries model.DefaultTitle.
func (r *Resolver) Artwork(ctx context.Context, id string) (*model.Artwork, error) {
	pageURL := r.ArtworkPageURL(id)

	title, titleErr := r.fetchTitle(ctx, id, pageURL)
	urls, pagesErr := r.fetchPages(ctx, id, pageURL)

	// The page markup is fetched at most once, shared by both fallbacks.
	var pageHTML string
	fetchHTML := func() string {
		if pageHTML == "" {
			html, err := r.client.GetString(ctx, pageURL, r.BaseURL+"/")
			if err != nil {
				return ""
			}
			pageHTML = html
		}
		return pageHTML
	}

	if titleErr != nil || title == "" {
		if html := fetchHTML(); html != "" {
			if t, err := extractTitle(html); err == nil {
				title = t
			}
		}
	}

	if pagesErr != nil || len(urls) == 0 {
		if html := fetchHTML(); html != "" {
			if fallbackURLs, err := extractImageURLs(html); err == nil && len(fallbackURLs) > 0 {
				urls = fallbackURLs
			}
		}
	}

	if len(urls) == 0 {
		if pagesErr != nil {
			return nil, fmt.Errorf("artwork %s: %w (pages api: %v)", id, ErrNoImages, pagesErr)
		}
		return nil, fmt.Errorf("artwork %s: %w", id, ErrNoImages)
	}

	return model.NewArtwork(id, title, urls), nil
}

// Gallery resolves the full artwork ID list of one user, combining
// illustrations and manga.
//
// The profile response's work collections may be object-shaped or
// array-shaped; dto.WorkSet normalizes both (see dto.JSONProfile).
func (r *Resolver) Gallery(ctx context.Context, userID string) (*model.Gallery, error) {
	apiURL := r.BaseURL + "/ajax/user/" + userID + "/profile/all?lang=en"
	referer := r.BaseURL + "/en/users/" + userID + "/artworks"

	raw, err := r.client.Get(ctx, apiURL, referer)
	if err != nil {
		return nil, fmt.Errorf("user %s profile: %w", userID, err)
	}

	var profile dto.JSONProfile
	if err := dto.DecodeEnvelope(raw, &profile); err != nil {
		return nil, fmt.Errorf("user %s profile: %w", userID, err)
	}

	return &model.Gallery{
		UserID:     userID,
		ArtworkIDs: profile.AllIDs(),
	}, nil
}

// fetchTitle asks /ajax/illust/<id> for the post title.
func (r *Resolver) fetchTitle(ctx context.Context, id, referer string) (string, error) {
	raw, err := r.client.Get(ctx, r.BaseURL+"/ajax/illust/"+id+"?lang=en", referer)
	if err != nil {
		return "", err
	}

	var illust dto.JSONIllust
	if err := dto.DecodeEnvelope(raw, &illust); err != nil {
		return "", err
	}
	return illust.Title, nil
}

// fetchPages asks /ajax/illust/<id>/pages for the ordered original
// image URLs.
func (r *Resolver) fetchPages(ctx context.Context, id, referer string) ([]string, error) {
	raw, err := r.client.Get(ctx, r.BaseURL+"/ajax/illust/"+id+"/pages?lang=en", referer)
	if err != nil {
		return nil, err
	}

	var pages []dto.JSONPage
	if err := dto.DecodeEnvelope(raw, &pages); err != nil {
		return nil, err
	}
	return dto.OriginalURLs(pages), nil
}
