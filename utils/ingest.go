package utils

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"learninglife/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Per-course upload limits, matching the admin course form
const (
	MaxCourseImages = 1
	MaxCourseVideos = 10
)

// MediaPayload is one uploaded file held in memory until ingestion
type MediaPayload struct {
	Data     []byte
	Filename string
}

// IngestCourseMedia transfers a course's media to the remote store and returns
// the image URL plus the video URLs in submission order. The whole ingestion is
// all-or-nothing: video uploads fan out concurrently, the first failure cancels
// the rest, and any object already uploaded is deleted again before the error
// is returned. A nil image and an empty video list are both valid.
func IngestCourseMedia(ctx context.Context, store ObjectStore, image *MediaPayload, videos []MediaPayload) (string, []string, error) {
	if len(videos) > MaxCourseVideos {
		return "", nil, fmt.Errorf("at most %d videos per course, got %d", MaxCourseVideos, len(videos))
	}

	// Reject mislabeled payloads before any network traffic
	if image != nil {
		if err := checkMediaKind(image, "image/"); err != nil {
			return "", nil, err
		}
	}
	for i := range videos {
		if err := checkMediaKind(&videos[i], "video/"); err != nil {
			return "", nil, err
		}
	}

	timeout := time.Duration(config.AppConfig.UploadTimeout) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		mu       sync.Mutex
		uploaded []string
		imageURL string
	)
	track := func(url string) {
		mu.Lock()
		uploaded = append(uploaded, url)
		mu.Unlock()
	}

	g, ctx := errgroup.WithContext(ctx)

	if image != nil {
		img := image
		g.Go(func() error {
			url, err := uploadPayload(ctx, store, "images", img)
			if err != nil {
				return err
			}
			imageURL = url
			track(url)
			return nil
		})
	}

	videoURLs := make([]string, len(videos))
	for i := range videos {
		i, v := i, &videos[i]
		g.Go(func() error {
			url, err := uploadPayload(ctx, store, "videos", v)
			if err != nil {
				return err
			}
			videoURLs[i] = url
			track(url)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		rollbackUploads(store, uploaded)
		return "", nil, err
	}

	return imageURL, videoURLs, nil
}

// uploadPayload stores one payload under a fresh object key and returns its URL
func uploadPayload(ctx context.Context, store ObjectStore, prefix string, p *MediaPayload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	mtype := mimetype.Detect(p.Data)
	ext := filepath.Ext(p.Filename)
	if ext == "" {
		ext = mtype.Extension()
	}

	objectPath := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext)
	return store.Upload(ctx, objectPath, p.Data, mtype.String())
}

// checkMediaKind verifies the sniffed content type matches the declared field
func checkMediaKind(p *MediaPayload, wantPrefix string) error {
	mtype := mimetype.Detect(p.Data)
	if !strings.HasPrefix(mtype.String(), wantPrefix) {
		return fmt.Errorf("%s is not a valid %s file (detected %s)",
			p.Filename, strings.TrimSuffix(wantPrefix, "/"), mtype.String())
	}
	return nil
}

// rollbackUploads best-effort deletes objects left behind by a failed ingestion
func rollbackUploads(store ObjectStore, urls []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, u := range urls {
		if err := store.Delete(ctx, u); err != nil {
			log.Printf("Failed to clean up uploaded object %s: %v", u, err)
		}
	}
}
