// Package pixiv resolves artwork and gallery metadata from pixiv.
//
// The package handles three concerns:
//
//  1. Classifying input URLs as artwork posts or user profiles
//  2. Fetching metadata through the ajax APIs
//  3. Falling back to page-markup extraction when the APIs fail
//
// # URL Classification
//
//	kind, id, err := pixiv.Classify("https://www.pixiv.net/artworks/129000000")
//	// kind == pixiv.KindArtwork, id == "129000000"
//
// # Resolving
//
//	r := pixiv.NewResolver(client)
//	art, err := r.Artwork(ctx, "129000000")     // title + ordered image URLs
//	gallery, err := r.Gallery(ctx, "1234567")   // all post IDs of a user
//
// # Fallback chain
//
// Each artwork is resolved API-first. When an endpoint answers with
// HTML instead of JSON (an expired session, a CAPTCHA page) or with an
// error envelope, the regular artwork page is fetched once and the
// title and image URLs are recovered from its markup, with thumbnail
// URLs rewritten to original quality. Only when both sources come up
// empty does Artwork fail, with ErrNoImages.
package pixiv
