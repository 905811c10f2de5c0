// Package archive turns a finished download folder into a zip file.
//
// The archive is always attempted, even after an interrupted run, so
// whatever completed pages exist are preserved. In-progress partial
// files are excluded, and a folder with nothing worth keeping is
// removed instead of producing an empty archive.
//
// Example usage:
//
//	zipPath, err := archive.Archive("/downloads/My Artwork_129000000", false)
//	if zipPath == "" && err == nil {
//	    // nothing was downloaded; the folder has been cleaned up
//	}
package archive
