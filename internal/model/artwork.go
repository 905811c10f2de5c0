package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultTitle is used when neither the API nor the HTML fallback
// yields a usable artwork title.
const DefaultTitle = "Untitled"

// Artwork represents a single pixiv post with its metadata and pages.
//
// Artwork contains everything needed to download and organize one post:
//   - ID for building API and referer URLs
//   - Title, used (sanitized) as the folder name
//   - Pages, the ordered original-quality image URLs
//
// A post may have one page or many; page order is significant and is
// preserved in the generated filenames so multi-page posts reconstruct
// correctly.
//
// Example:
//
//	art := model.NewArtwork("129000000", "My Title", urls)
//	art.FolderName()          // "My Title"
//	art.Pages[0].FileName()   // "01.jpg"
type Artwork struct {
	// ID is the numeric post identifier as it appears in the URL.
	ID string

	// Title is the artwork title. May contain characters that are not
	// filesystem safe; use FolderName for paths.
	Title string

	// Pages holds the ordered image URLs, one entry per page.
	Pages []Page
}

// Page is a single image within an artwork.
type Page struct {
	// Index is the zero-based page position within the artwork.
	Index int

	// URL is the original-quality image URL.
	URL string
}

// NewArtwork creates an Artwork from a title and an ordered URL list.
//
// An empty title is replaced with DefaultTitle. The page Index of each
// entry follows the position of its URL in the input slice.
func NewArtwork(id, title string, imageURLs []string) *Artwork {
	if title == "" {
		title = DefaultTitle
	}

	art := &Artwork{
		ID:    id,
		Title: title,
	}
	for i, u := range imageURLs {
		art.Pages = append(art.Pages, Page{Index: i, URL: u})
	}

	return art
}

// FolderName returns the directory name for this artwork,
// "<sanitized title>_<id>". The ID keeps two same-titled posts from
// sharing a folder.
func (a *Artwork) FolderName() string {
	return SanitizeFileName(a.Title) + "_" + a.ID
}

// FileName returns the page-indexed filename for this page, e.g. "01.jpg".
//
// The extension is taken from the URL path (query string stripped) and
// defaults to ".jpg" when the URL has none.
func (p Page) FileName() string {
	return fmt.Sprintf("%02d%s", p.Index+1, p.ext())
}

// FlatFileName returns the filename used in the flat gallery layout,
// where all pages of all posts share one directory:
// "<title>_<postID>_<page>.<ext>".
func (p Page) FlatFileName(a *Artwork) string {
	return fmt.Sprintf("%s_%02d%s", a.FolderName(), p.Index+1, p.ext())
}

func (p Page) ext() string {
	u := p.URL
	if i := strings.IndexByte(u, '?'); i != -1 {
		u = u[:i]
	}
	ext := filepath.Ext(u)
	if ext == "" {
		ext = ".jpg"
	}
	return ext
}

// Gallery represents one user's full set of artworks.
//
// ArtworkIDs combines the user's illustrations and manga, deduplicated,
// in normalized order. The entries are IDs only; per-artwork metadata is
// resolved separately so that a single broken post does not take the
// whole gallery down with it.
type Gallery struct {
	// UserID is the numeric user identifier as it appears in the URL.
	UserID string

	// ArtworkIDs is the ordered, deduplicated list of post IDs.
	ArtworkIDs []string
}

// RootFolderName returns the directory name that holds a gallery
// download, e.g. "Pixiv_User_123456".
func (g *Gallery) RootFolderName() string {
	return "Pixiv_User_" + SanitizeFileName(g.UserID)
}

// SanitizeFileName removes or replaces characters that are invalid in
// file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Leading/trailing whitespace is removed
//
// Example:
//
//	SanitizeFileName("Title: Part 1/2") // Returns "Title_ Part 1_2"
func SanitizeFileName(name string) string {
	// Replace invalid path/file characters
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	// Remove trailing dots
	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	// Replace multiple whitespace with single space
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	return strings.TrimSpace(name)
}
