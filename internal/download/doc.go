// Package download provides the download orchestration logic for
// fetching artworks from pixiv.
//
// # Manager
//
// The Manager coordinates the entire download process:
//
//  1. Classify the input URL (single post or user gallery)
//  2. Resolve artwork metadata and image URLs
//  3. Download images concurrently
//  4. Optionally save preview thumbnails
//  5. Zip the result folder
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	err := manager.Initialize(ctx, "https://www.pixiv.net/artworks/129000000")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = manager.StartDownloads(ctx)
//	zipPath, _ := manager.Archive()
//
// # Concurrency
//
// Image downloads run on a bounded pool of MaxConcurrentImages
// workers. There are no per-image retries: a failed download is
// reported through the progress callback and the run moves on.
//
// # Cancellation
//
// When the context is cancelled the Manager stops dispatching new
// downloads but lets in-flight ones wind down. Archive still works
// afterwards, so an interrupted run yields a zip of whatever
// completed.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package download
