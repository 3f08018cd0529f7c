package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"learninglife/config"

	"github.com/go-resty/resty/v2"
	storage "github.com/supabase-community/storage-go"
)

// ObjectStore is the remote media store the ingestion pipeline talks to.
// Callers that want retries can wrap an implementation without touching the
// pipeline itself.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// SupabaseStore keeps course media in a Supabase Storage bucket and serves it
// back through permanent public URLs.
type SupabaseStore struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *storage.Client
	http    *resty.Client
}

func NewSupabaseStore(baseURL, apiKey, bucket string) *SupabaseStore {
	base := strings.TrimRight(baseURL, "/")
	return &SupabaseStore{
		baseURL: base,
		apiKey:  apiKey,
		bucket:  bucket,
		client:  storage.NewClient(base+"/storage/v1", apiKey, nil),
		http:    resty.New(),
	}
}

// Upload pushes one object into the bucket and returns its public URL.
func (s *SupabaseStore) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	options := storage.FileOptions{
		ContentType: &contentType,
	}

	if _, err := s.client.UploadFile(s.bucket, objectPath, bytes.NewReader(data), options); err != nil {
		return "", fmt.Errorf("media store upload failed for %s: %w", objectPath, err)
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath)
	return publicURL, nil
}

// Ping probes the bucket so the health route can report whether course media
// is reachable.
func (s *SupabaseStore) Ping(ctx context.Context) error {
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("apikey", s.apiKey).
		Get(fmt.Sprintf("%s/storage/v1/bucket/%s", s.baseURL, s.bucket))
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("media store unreachable: status=%d", resp.StatusCode())
	}
	return nil
}

// Delete removes the object behind a public URL issued by Upload.
func (s *SupabaseStore) Delete(ctx context.Context, publicURL string) error {
	if publicURL == "" {
		return nil
	}

	marker := "/storage/v1/object/public/"
	idx := strings.Index(publicURL, marker)
	if idx == -1 {
		return fmt.Errorf("cannot determine object path from URL: %s", publicURL)
	}
	objectRef := publicURL[idx+len(marker):] // "<bucket>/<path/to/object>"

	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("apikey", s.apiKey).
		Delete(fmt.Sprintf("%s/storage/v1/object/%s", s.baseURL, objectRef))
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 204 {
		return fmt.Errorf("media store delete failed: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	return nil
}

// HealthChecker is implemented by stores that can report reachability.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// The process-wide store. Built once at startup by InitMediaStore; the mutex
// covers handlers reading it concurrently with tests swapping it out.
var (
	mediaStoreMu sync.RWMutex
	mediaStore   ObjectStore
)

// InitMediaStore builds the process-wide media store from the configured
// credentials. main calls it once, alongside config and database setup.
func InitMediaStore() {
	SetMediaStoreClient(NewSupabaseStore(
		config.AppConfig.MediaStoreURL,
		config.AppConfig.MediaStoreKey,
		config.AppConfig.MediaStoreBucket,
	))
}

// MediaStoreClient returns the process-wide media store.
func MediaStoreClient() ObjectStore {
	mediaStoreMu.RLock()
	defer mediaStoreMu.RUnlock()
	return mediaStore
}

// SetMediaStoreClient replaces the process-wide media store.
func SetMediaStoreClient(store ObjectStore) {
	mediaStoreMu.Lock()
	defer mediaStoreMu.Unlock()
	mediaStore = store
}

// PingMediaStore reports whether the media store is reachable. Stores without
// a reachability check are assumed healthy.
func PingMediaStore(ctx context.Context) error {
	if hc, ok := MediaStoreClient().(HealthChecker); ok {
		return hc.Ping(ctx)
	}
	return nil
}
