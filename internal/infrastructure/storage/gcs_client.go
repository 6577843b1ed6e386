// Package storage uploads user-visible media to Google Cloud Storage.
// Objects are public-read; the returned URL is stored on the owning
// document (profile photoURL, post image) and served directly by GCS.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type MediaStorage struct {
	client *gcs.Client
	bucket string
}

func NewMediaStorage(ctx context.Context, bucket, credentialsPath string) (*MediaStorage, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &MediaStorage{client: client, bucket: bucket}, nil
}

// SupportedImageType reports whether contentType is an image format the
// app accepts for uploads.
func SupportedImageType(contentType string) bool {
	_, ok := extensions[contentType]
	return ok
}

// UploadProfilePhoto stores the image under the user's folder and returns
// its public URL. Each upload gets a fresh object name so stale CDN
// caches never serve a replaced photo.
func (m *MediaStorage) UploadProfilePhoto(ctx context.Context, uid string, r io.Reader, contentType string) (string, error) {
	return m.upload(ctx, fmt.Sprintf("profiles/%s", uid), r, contentType)
}

// UploadPostImage stores an image attached to a community post.
func (m *MediaStorage) UploadPostImage(ctx context.Context, communityID string, r io.Reader, contentType string) (string, error) {
	return m.upload(ctx, fmt.Sprintf("posts/%s", communityID), r, contentType)
}

func (m *MediaStorage) upload(ctx context.Context, folder string, r io.Reader, contentType string) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	name := fmt.Sprintf("%s/%s-%s%s", folder, uuid.New().String(), time.Now().Format("20060102150405"), ext)

	obj := m.client.Bucket(m.bucket).Object(name)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("write object %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s: %w", name, err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("set public ACL on %s: %w", name, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", m.bucket, name), nil
}

func (m *MediaStorage) Close() error {
	return m.client.Close()
}
