package contentstore

import (
	"context"
	"errors"
	"sync"
)

// MemoryAssetStore keeps uploads in memory.
type MemoryAssetStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	MaxSize int64

	// FailAfter makes every upload after the first N fail. Negative disables it.
	FailAfter int
	uploads   int
}

// NewMemoryAssetStore creates an empty asset store.
func NewMemoryAssetStore() *MemoryAssetStore {
	return &MemoryAssetStore{objects: make(map[string][]byte), FailAfter: -1}
}

var _ AssetStore = (*MemoryAssetStore)(nil)

// Validate checks content type and size.
func (m *MemoryAssetStore) Validate(contentType string, size int64) error {
	return ValidateAsset(contentType, size, m.MaxSize)
}

// Upload stores data under a generated key.
func (m *MemoryAssetStore) Upload(_ context.Context, file AssetUpload) (Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAfter >= 0 && m.uploads >= m.FailAfter {
		m.uploads++
		return Asset{}, errors.New("upload rejected")
	}
	m.uploads++
	key := AssetKey(file.Folder, file.FileName)
	m.objects[key] = append([]byte(nil), file.Data...)
	return Asset{ID: key, ContentType: file.ContentType, Size: int64(len(file.Data))}, nil
}

// Delete removes an asset. Unknown ids are ignored.
func (m *MemoryAssetStore) Delete(_ context.Context, assetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, assetID)
	return nil
}

// Len returns the number of stored assets.
func (m *MemoryAssetStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// Has reports whether assetID is stored.
func (m *MemoryAssetStore) Has(assetID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[assetID]
	return ok
}
