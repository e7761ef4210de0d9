package contentstore

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

const uploadConcurrency = 5

// ValidateAll checks every file before anything is uploaded.
func ValidateAll(store AssetStore, files []AssetUpload) error {
	for _, f := range files {
		if err := store.Validate(f.ContentType, int64(len(f.Data))); err != nil {
			return err
		}
	}
	return nil
}

// UploadAll uploads files in parallel. The result is indexed like files. On
// failure it still returns the ids that were stored so the caller can clean
// them up.
func UploadAll(ctx context.Context, store AssetStore, files []AssetUpload) ([]Asset, []string, error) {
	assets := make([]Asset, len(files))
	var (
		mu       sync.Mutex
		uploaded []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, f := range files {
		g.Go(func() error {
			asset, err := store.Upload(gctx, f)
			if err != nil {
				return err
			}
			mu.Lock()
			assets[i] = asset
			uploaded = append(uploaded, asset.ID)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, uploaded, err
	}
	return assets, uploaded, nil
}
