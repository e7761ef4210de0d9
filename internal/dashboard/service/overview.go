package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/dashboard/repository"
	"horse_portal_backend/internal/dashboard/transport"
)

// Overview counts what the user has across every tab.
func (s *Service) Overview(ctx context.Context, userID uuid.UUID) (transport.OverviewResponse, error) {
	var out transport.OverviewResponse
	owned := contentstore.OwnedBy(userID)

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int, docType string, filters ...contentstore.Filter) {
		g.Go(func() error {
			n, err := s.repo.Count(gctx, docType, filters...)
			*dst = n
			return err
		})
	}
	count(&out.Services, contentstore.TypeService, owned)
	count(&out.Orders, contentstore.TypeOrder, contentstore.Eq(repository.SideBuyer+"._ref", userID.String()))
	count(&out.Favorites, contentstore.TypeFavorite, owned)
	count(&out.Products, contentstore.TypeProduct, owned)
	count(&out.Courses, contentstore.TypeCourse, owned)
	count(&out.Books, contentstore.TypeBook, owned)
	g.Go(func() error {
		stable, ok, err := s.repo.Stable(gctx, userID)
		if err != nil || !ok {
			return err
		}
		out.HasStable = true
		out.Reservations, err = s.repo.Count(gctx, contentstore.TypeReservation, contentstore.Eq("stableRef._ref", stable.ID.String()))
		return err
	})

	if err := g.Wait(); err != nil {
		return transport.OverviewResponse{}, err
	}
	return out, nil
}
