package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/dashboard/transport"
	"horse_portal_backend/platform/apperr"
)

const favoriteLookupLimit = 5

// Favorites lists the user's favorites with the current service names.
// Favorites of deleted services are listed without names.
func (s *Service) Favorites(ctx context.Context, userID uuid.UUID) ([]transport.FavoriteResponse, error) {
	docs, err := s.repo.Favorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]transport.FavoriteResponse, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(favoriteLookupLimit)
	for i, fav := range docs {
		out[i] = transport.FavoriteResponse{ID: fav.ID, ServiceID: fav.RefID("serviceRef"), CreatedAt: fav.CreatedAt}
		g.Go(func() error {
			id, err := uuid.Parse(out[i].ServiceID)
			if err != nil {
				return nil
			}
			svc, err := s.repo.Typed(gctx, contentstore.TypeService, id)
			if apperr.Is(err, apperr.KindNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			out[i].ServiceType = svc.String("serviceType")
			out[i].NameAr = svc.String("name_ar")
			out[i].NameEn = svc.String("name_en")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// AddFavorite marks a service as favorite. Adding it twice returns the existing entry.
func (s *Service) AddFavorite(ctx context.Context, userID uuid.UUID, serviceID uuid.UUID) (transport.FavoriteResponse, bool, error) {
	svc, err := s.repo.Typed(ctx, contentstore.TypeService, serviceID)
	if err != nil {
		return transport.FavoriteResponse{}, false, err
	}

	fav, exists, err := s.repo.Favorite(ctx, userID, serviceID.String())
	if err != nil {
		return transport.FavoriteResponse{}, false, err
	}
	if !exists {
		fav, err = s.repo.CreateOwned(ctx, contentstore.TypeFavorite, userID, map[string]any{
			"serviceRef": contentstore.Ref(serviceID.String()),
		})
		if err != nil {
			return transport.FavoriteResponse{}, false, err
		}
	}
	return transport.FavoriteResponse{
		ID:          fav.ID,
		ServiceID:   serviceID.String(),
		ServiceType: svc.String("serviceType"),
		NameAr:      svc.String("name_ar"),
		NameEn:      svc.String("name_en"),
		CreatedAt:   fav.CreatedAt,
	}, !exists, nil
}

// RemoveFavorite unmarks a service. Removing a missing favorite succeeds.
func (s *Service) RemoveFavorite(ctx context.Context, userID uuid.UUID, serviceID uuid.UUID) error {
	fav, exists, err := s.repo.Favorite(ctx, userID, serviceID.String())
	if err != nil || !exists {
		return err
	}
	return s.repo.Delete(ctx, fav.ID)
}
