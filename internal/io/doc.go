// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - File copying and writing
//   - Directory creation
//   - Preview thumbnail generation
//
// # File Operations
//
//	// Copy a file
//	err := ioutils.CopyFile(ctx, "/src/01.png", "/dst/01.png")
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/path/to/file.txt", []byte("content"))
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Image Processing
//
// The ImageService turns a downloaded page image into a small JPEG
// preview placed next to the full-size files:
//
//	svc := ioutils.NewImageService()
//
//	preview, _ := svc.ResizeImage(ctx, imageData, 500, 500)
//	err := ioutils.WriteFile(ctx, "/art/preview.jpg", preview)
package ioutils
