// Package model defines the core data structures used throughout
// pixiv-downloader.
//
// # Artwork
//
// Artwork represents one pixiv post with its ordered image pages:
//
//	art := model.NewArtwork("129000000", "Title", imageURLs)
//	fmt.Println(art.FolderName())        // Sanitized directory name
//	fmt.Println(art.Pages[0].FileName()) // "01.jpg"
//
// # Gallery
//
// Gallery is one user's full set of post IDs (illustrations and manga
// combined):
//
//	g := &model.Gallery{UserID: "123", ArtworkIDs: ids}
//	fmt.Println(g.RootFolderName()) // "Pixiv_User_123"
//
// # Filename sanitization
//
// SanitizeFileName makes arbitrary titles safe to use as file or folder
// names across operating systems:
//
//	safe := model.SanitizeFileName("Title: Part 1/2") // "Title_ Part 1_2"
package model
