package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/dashboard/repository"
	"horse_portal_backend/internal/dashboard/transport"
	"horse_portal_backend/internal/events"
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/platform/apperr"
)

// Stable returns the user's stable and its reservations.
func (s *Service) Stable(ctx context.Context, tr i18n.Translator, userID uuid.UUID) (transport.StableResponse, error) {
	stable, err := s.ownStable(ctx, tr, userID)
	if err != nil {
		return transport.StableResponse{}, err
	}
	reservations, err := s.repo.Reservations(ctx, stable.ID)
	if err != nil {
		return transport.StableResponse{}, err
	}
	return transport.StableResponse{
		ID:           stable.ID,
		NameAr:       stable.String("name_ar"),
		NameEn:       stable.String("name_en"),
		KindOfStable: stable.String("kindOfStable"),
		Approved:     boolField(stable, "statusAdminApproved"),
		Reservations: lo.Map(reservations, func(d contentstore.Document, _ int) transport.ReservationResponse { return mapReservation(d) }),
	}, nil
}

// DecideReservation approves or rejects a pending reservation of the user's stable.
func (s *Service) DecideReservation(ctx context.Context, tr i18n.Translator, userID, reservationID uuid.UUID, decision string) (transport.ReservationResponse, error) {
	stable, err := s.ownStable(ctx, tr, userID)
	if err != nil {
		return transport.ReservationResponse{}, err
	}
	res, err := s.repo.Typed(ctx, contentstore.TypeReservation, reservationID)
	if err != nil {
		return transport.ReservationResponse{}, err
	}
	if res.RefID("stableRef") != stable.ID.String() {
		return transport.ReservationResponse{}, apperr.Forbidden("reservation belongs to another stable")
	}
	if res.String("status") != repository.ReservationPending {
		return transport.ReservationResponse{}, apperr.Conflict(tr.T(i18n.MsgInvalidStatusChange))
	}

	status := repository.ReservationRejected
	if decision == "approve" {
		status = repository.ReservationApproved
	}
	updated, err := s.repo.SetStatus(ctx, reservationID, repository.ReservationPending, status)
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return transport.ReservationResponse{}, apperr.Conflict(tr.T(i18n.MsgInvalidStatusChange))
		}
		return transport.ReservationResponse{}, err
	}
	s.bus.Publish(ctx, events.ReservationDecided{
		BaseEvent:     events.NewBaseEvent(),
		ReservationID: reservationID,
		StableID:      stable.ID,
		Status:        status,
	})
	return mapReservation(updated), nil
}

func (s *Service) ownStable(ctx context.Context, tr i18n.Translator, userID uuid.UUID) (contentstore.Document, error) {
	stable, ok, err := s.repo.Stable(ctx, userID)
	if err != nil {
		return contentstore.Document{}, err
	}
	if !ok {
		return contentstore.Document{}, apperr.NotFound(tr.T(i18n.MsgNoStable))
	}
	return stable, nil
}

func mapReservation(d contentstore.Document) transport.ReservationResponse {
	return transport.ReservationResponse{
		ID:        d.ID,
		StableID:  d.RefID("stableRef"),
		UserID:    d.RefID("userRef"),
		HorseName: d.String("horseName"),
		StartDate: d.String("startDate"),
		EndDate:   d.String("endDate"),
		Status:    d.String("status"),
		Notes:     d.String("notes"),
	}
}
