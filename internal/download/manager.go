package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/handiism/pixiv-downloader/internal/archive"
	"github.com/handiism/pixiv-downloader/internal/config"
	httpclient "github.com/handiism/pixiv-downloader/internal/http"
	ioutils "github.com/handiism/pixiv-downloader/internal/io"
	"github.com/handiism/pixiv-downloader/internal/model"
	"github.com/handiism/pixiv-downloader/internal/pixiv"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// task is one image to fetch: source URL, its Referer, and where the
// file lands.
type task struct {
	url       string
	referer   string
	destPath  string
	firstPage bool
}

// Manager coordinates artwork downloads.
//
// A Manager handles exactly one input URL per run: Initialize resolves
// it into a set of image download tasks, StartDownloads executes them
// with bounded concurrency, and Archive packs whatever finished into a
// zip file. Archive is meant to run even when StartDownloads was cut
// short by cancellation.
type Manager struct {
	settings     *config.Settings
	httpClient   *httpclient.Client
	resolver     *pixiv.Resolver
	imageService *ioutils.ImageService

	rootFolder string
	artworks   []*model.Artwork
	tasks      []task

	totalFiles      int32
	downloadedFiles int32
	receivedBytes   int64

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	client := httpclient.NewClient(settings.SessionID)
	if settings.UserAgent != "" {
		client.SetUserAgent(settings.UserAgent)
	}

	return &Manager{
		settings:     settings,
		httpClient:   client,
		resolver:     pixiv.NewResolver(client),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// Initialize resolves the input URL into download tasks.
//
// A single post URL produces one artwork; a user profile URL produces
// the user's whole gallery. In gallery mode an artwork that fails to
// resolve is reported and skipped, it never aborts the run. Only a
// failure to resolve the input URL itself is returned as an error.
func (m *Manager) Initialize(ctx context.Context, inputURL string) error {
	kind, id, err := pixiv.Classify(inputURL)
	if err != nil {
		return err
	}

	switch kind {
	case pixiv.KindArtwork:
		return m.initArtwork(ctx, id)
	case pixiv.KindUser:
		return m.initGallery(ctx, id)
	}
	return fmt.Errorf("unsupported URL kind %d", kind)
}

func (m *Manager) initArtwork(ctx context.Context, id string) error {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching artwork info: %s", id), Level: LevelVerbose})

	art, err := m.resolver.Artwork(ctx, id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.artworks = []*model.Artwork{art}
	m.rootFolder = filepath.Join(m.settings.OutputPath, art.FolderName())

	// A lone post always gets its own folder with plain page names.
	for _, page := range art.Pages {
		m.tasks = append(m.tasks, task{
			url:       page.URL,
			referer:   m.resolver.ArtworkPageURL(art.ID),
			destPath:  filepath.Join(m.rootFolder, page.FileName()),
			firstPage: page.Index == 0,
		})
	}
	m.totalFiles = int32(len(m.tasks))

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found artwork: %s (%d pages)", art.Title, len(art.Pages)), Level: LevelInfo})
	return nil
}

func (m *Manager) initGallery(ctx context.Context, userID string) error {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching gallery of user %s", userID), Level: LevelVerbose})

	gallery, err := m.resolver.Gallery(ctx, userID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.rootFolder = filepath.Join(m.settings.OutputPath, gallery.RootFolderName())
	m.mu.Unlock()

	m.progress(ProgressEvent{Message: fmt.Sprintf("User %s has %d artworks", userID, len(gallery.ArtworkIDs)), Level: LevelInfo})

	for i, id := range gallery.ArtworkIDs {
		if ctx.Err() != nil {
			m.progress(ProgressEvent{Message: "Stopping gallery resolution", Level: LevelWarning})
			break
		}
		if i > 0 {
			if err := m.pause(ctx); err != nil {
				break
			}
		}

		art, err := m.resolver.Artwork(ctx, id)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping artwork %s: %v", id, err), Level: LevelError})
			continue
		}

		m.addGalleryArtwork(art)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Found artwork: %s (%d pages)", art.Title, len(art.Pages)), Level: LevelVerbose})
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.artworks) == 0 {
		return fmt.Errorf("user %s: no downloadable artworks", userID)
	}
	return nil
}

func (m *Manager) addGalleryArtwork(art *model.Artwork) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.artworks = append(m.artworks, art)
	for _, page := range art.Pages {
		dest := filepath.Join(m.rootFolder, page.FlatFileName(art))
		if m.settings.UsePostSubfolders {
			dest = filepath.Join(m.rootFolder, art.FolderName(), page.FileName())
		}
		m.tasks = append(m.tasks, task{
			url:       page.URL,
			referer:   m.resolver.ArtworkPageURL(art.ID),
			destPath:  dest,
			firstPage: page.Index == 0,
		})
	}
	m.totalFiles = int32(len(m.tasks))
}

// StartDownloads executes all initialized download tasks.
//
// At most MaxConcurrentImages downloads run at once. A failed task is
// reported and does not stop the others; there are no retries. When
// ctx is cancelled no further tasks are dispatched, in-flight ones
// finish or abort on their own, and the error returned is ctx's.
func (m *Manager) StartDownloads(ctx context.Context) error {
	m.mu.RLock()
	tasks := m.tasks
	m.mu.RUnlock()

	if len(tasks) == 0 {
		m.progress(ProgressEvent{Message: "Nothing to download", Level: LevelWarning})
		return nil
	}

	g := new(errgroup.Group)
	g.SetLimit(m.settings.MaxConcurrentImages)

	var dispatchErr error
	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			m.progress(ProgressEvent{Message: "Stopping dispatch, waiting for in-flight downloads", Level: LevelWarning})
			dispatchErr = err
			break
		}

		t := t // capture
		g.Go(func() error {
			if err := m.downloadImage(ctx, t); err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading %s: %v", filepath.Base(t.destPath), err), Level: LevelError})
				return nil // Continue with other images
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if dispatchErr != nil {
		return dispatchErr
	}

	done := atomic.LoadInt32(&m.downloadedFiles)
	if done == m.totalFiles {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Successfully downloaded all %d images", done), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Finished with %d/%d images", done, m.totalFiles), Level: LevelWarning})
	}
	return nil
}

func (m *Manager) downloadImage(ctx context.Context, t task) error {
	if err := ioutils.EnsureDir(filepath.Dir(t.destPath)); err != nil {
		return err
	}

	// Already downloaded in a previous run
	if info, err := os.Stat(t.destPath); err == nil && info.Size() > 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", filepath.Base(t.destPath)), Level: LevelVerbose})
		atomic.AddInt32(&m.downloadedFiles, 1)
		return nil
	}

	var lastWritten int64
	err := m.httpClient.DownloadFile(ctx, t.url, t.referer, t.destPath, func(written, total int64) {
		atomic.AddInt64(&m.receivedBytes, written-lastWritten)
		lastWritten = written
	})
	if err != nil {
		return err
	}

	atomic.AddInt32(&m.downloadedFiles, 1)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", filepath.Base(t.destPath)), Level: LevelVerbose})

	if t.firstPage && m.settings.SavePreviewThumbnail {
		if err := m.savePreview(ctx, t.destPath); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving preview for %s: %v", filepath.Base(t.destPath), err), Level: LevelWarning})
		}
	}
	return nil
}

// savePreview writes a small JPEG rendition of the first page next to
// the full-size file.
func (m *Manager) savePreview(ctx context.Context, pagePath string) error {
	data, err := os.ReadFile(pagePath)
	if err != nil {
		return err
	}

	maxSize := m.settings.PreviewMaxSize
	preview, err := m.imageService.ResizeImage(ctx, data, maxSize, maxSize)
	if err != nil {
		return err
	}

	ext := filepath.Ext(pagePath)
	previewPath := pagePath[:len(pagePath)-len(ext)] + "_preview.jpg"
	return ioutils.WriteFile(ctx, previewPath, preview)
}

// Archive zips the download folder.
//
// Call this after StartDownloads returns, cancelled or not: partial
// results are archived, an empty run leaves no folder behind.
func (m *Manager) Archive() (string, error) {
	m.mu.RLock()
	folder := m.rootFolder
	m.mu.RUnlock()

	if folder == "" {
		return "", errors.New("not initialized")
	}
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		m.progress(ProgressEvent{Message: "Nothing was downloaded, skipping archive", Level: LevelWarning})
		return "", nil
	}

	zipPath, err := archive.Archive(folder, m.settings.KeepFolderAfterArchive)
	if err != nil {
		return "", err
	}
	if zipPath == "" {
		m.progress(ProgressEvent{Message: "Nothing was downloaded, skipping archive", Level: LevelWarning})
		return "", nil
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Created archive: %s", zipPath), Level: LevelSuccess})
	return zipPath, nil
}

// GetProgress returns current download progress.
func (m *Manager) GetProgress() (receivedBytes int64, filesReceived, filesTotal int32) {
	return atomic.LoadInt64(&m.receivedBytes),
		atomic.LoadInt32(&m.downloadedFiles),
		m.totalFiles
}

// ArtworkNames returns display names of all resolved artworks.
func (m *Manager) ArtworkNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.artworks))
	for i, art := range m.artworks {
		names[i] = fmt.Sprintf("%s (%d pages)", art.Title, len(art.Pages))
	}
	return names
}

// RootFolder returns the folder downloads land in. Empty before
// Initialize.
func (m *Manager) RootFolder() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rootFolder
}

// pause sleeps between metadata fetches so gallery resolution doesn't
// hammer the API. Returns early with ctx's error on cancellation.
func (m *Manager) pause(ctx context.Context) error {
	delay := time.Duration(m.settings.PostFetchDelayMs) * time.Millisecond
	if delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
