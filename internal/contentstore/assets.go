package contentstore

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/config"
)

// AllowedAssetTypes defines the MIME types accepted for listing media.
var AllowedAssetTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// AssetUpload is one file staged by a wizard.
type AssetUpload struct {
	Folder      string
	FileName    string
	ContentType string
	Data        []byte
}

// Asset is an uploaded binary. ID is the value stored in image references.
type Asset struct {
	ID          string `json:"_id"`
	ContentType string `json:"mimeType"`
	Size        int64  `json:"size"`
}

// AssetStore uploads and removes listing media.
type AssetStore interface {
	Validate(contentType string, size int64) error
	Upload(ctx context.Context, file AssetUpload) (Asset, error)
	Delete(ctx context.Context, assetID string) error
}

// MinIOAssetStore implements AssetStore on an S3-compatible bucket.
type MinIOAssetStore struct {
	client      *minio.Client
	bucket      string
	maxFileSize int64
}

// NewMinIOAssetStore creates a MinIO-backed asset store.
func NewMinIOAssetStore(cfg config.MinIOConfig) (*MinIOAssetStore, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinIOAssetStore{
		client:      client,
		bucket:      cfg.GetMinioBucketAssets(),
		maxFileSize: cfg.GetMinIOMaxFileSize(),
	}, nil
}

var _ AssetStore = (*MinIOAssetStore)(nil)

// EnsureBucketExists creates the asset bucket if it doesn't exist.
func (s *MinIOAssetStore) EnsureBucketExists(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Validate checks content type and size before anything is sent.
func (s *MinIOAssetStore) Validate(contentType string, size int64) error {
	return ValidateAsset(contentType, size, s.maxFileSize)
}

// Upload stores the file under a unique key and returns that key as the asset id.
func (s *MinIOAssetStore) Upload(ctx context.Context, file AssetUpload) (Asset, error) {
	key := AssetKey(file.Folder, file.FileName)
	size := int64(len(file.Data))

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(file.Data), size, minio.PutObjectOptions{
		ContentType: file.ContentType,
	})
	if err != nil {
		return Asset{}, fmt.Errorf("failed to upload file %s: %w", key, err)
	}
	return Asset{ID: key, ContentType: file.ContentType, Size: size}, nil
}

// Delete removes an uploaded asset.
func (s *MinIOAssetStore) Delete(ctx context.Context, assetID string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, assetID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", assetID, err)
	}
	return nil
}

// ValidateAsset checks an upload against AllowedAssetTypes and maxSize.
func ValidateAsset(contentType string, size int64, maxSize int64) error {
	normalized := strings.TrimSpace(strings.ToLower(strings.Split(contentType, ";")[0]))
	if !AllowedAssetTypes[normalized] {
		return apperr.BadRequest(fmt.Sprintf("content type %q is not allowed", contentType))
	}
	if size <= 0 {
		return apperr.BadRequest("file size must be greater than 0")
	}
	if maxSize > 0 && size > maxSize {
		return apperr.BadRequest(fmt.Sprintf("file size %d bytes exceeds maximum allowed size of %d bytes", size, maxSize))
	}
	return nil
}

// AssetKey builds a collision-free object key inside folder from the
// slugified file name.
func AssetKey(folder, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	base := slug.Make(strings.TrimSuffix(path.Base(fileName), path.Ext(fileName)))
	if base == "" {
		base = "file"
	}
	return path.Join(folder, fmt.Sprintf("%s_%s%s", base, uuid.New().String()[:8], ext))
}
