// Package locations loads the country -> governorate -> city reference lists
// and drives the dependent selection used by the listing wizards.
package locations

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"horse_portal_backend/internal/contentstore"
)

// Option is one selectable reference document.
type Option struct {
	ID     string `json:"id"`
	NameAr string `json:"name_ar"`
	NameEn string `json:"name_en"`
}

// Source fetches reference lists.
type Source interface {
	Countries(ctx context.Context) ([]Option, error)
	Governorates(ctx context.Context, countryID string) ([]Option, error)
	Cities(ctx context.Context, governorateID string) ([]Option, error)
}

// StoreSource reads reference lists from the content store.
type StoreSource struct {
	store contentstore.Store
}

// NewStoreSource creates a Source backed by store.
func NewStoreSource(store contentstore.Store) *StoreSource {
	return &StoreSource{store: store}
}

var _ Source = (*StoreSource)(nil)

// Countries lists every country.
func (s *StoreSource) Countries(ctx context.Context) ([]Option, error) {
	return s.fetch(ctx, contentstore.Query{Type: contentstore.TypeCountry, OrderBy: "name_en"})
}

// Governorates lists governorates whose country reference is countryID.
func (s *StoreSource) Governorates(ctx context.Context, countryID string) ([]Option, error) {
	return s.fetch(ctx, contentstore.Query{
		Type:    contentstore.TypeGovernorate,
		Filters: []contentstore.Filter{contentstore.Eq("country._ref", countryID)},
		OrderBy: "name_en",
	})
}

// Cities lists cities whose governorate reference is governorateID.
func (s *StoreSource) Cities(ctx context.Context, governorateID string) ([]Option, error) {
	return s.fetch(ctx, contentstore.Query{
		Type:    contentstore.TypeCity,
		Filters: []contentstore.Filter{contentstore.Eq("governorate._ref", governorateID)},
		OrderBy: "name_en",
	})
}

func (s *StoreSource) fetch(ctx context.Context, q contentstore.Query) ([]Option, error) {
	docs, err := s.store.Fetch(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch %s list: %w", q.Type, err)
	}
	return lo.Map(docs, func(d contentstore.Document, _ int) Option {
		return Option{ID: d.ID.String(), NameAr: d.String("name_ar"), NameEn: d.String("name_en")}
	}), nil
}
