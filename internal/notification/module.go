// Package notification subscribes to domain events and turns them into
// background work: admin emails for submitted listings and removal of
// orphaned assets.
package notification

import (
	"context"
	"errors"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/email"
	"horse_portal_backend/internal/events"
	"horse_portal_backend/internal/scheduler"
	"horse_portal_backend/platform/logger"
)

// Module handles listing and dashboard events.
type Module struct {
	enqueuer   scheduler.Enqueuer
	assets     contentstore.AssetStore
	mailer     email.Sender
	adminEmail string
	log        *logger.Logger
}

// New creates the notification module. With a nil enqueuer the work runs
// inline against assets and mailer.
func New(enqueuer scheduler.Enqueuer, assets contentstore.AssetStore, mailer email.Sender, adminEmail string, log *logger.Logger) *Module {
	return &Module{enqueuer: enqueuer, assets: assets, mailer: mailer, adminEmail: adminEmail, log: log}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	// Listing events
	bus.Subscribe(events.ServiceListingSubmitted{}.EventName(), m)
	bus.Subscribe(events.StableListingSubmitted{}.EventName(), m)
	bus.Subscribe(events.AssetsOrphaned{}.EventName(), m)

	// Dashboard events
	bus.Subscribe(events.OrderStatusChanged{}.EventName(), m)
	bus.Subscribe(events.ReservationDecided{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.ServiceListingSubmitted:
		return m.notify(ctx, scheduler.ListingNotifyPayload{
			Kind:       email.ListingService,
			DocumentID: e.ServiceID.String(),
			UserID:     e.UserID.String(),
			Type:       e.ServiceType,
			NameEn:     e.NameEn,
			NameAr:     e.NameAr,
			Edited:     e.Edited,
		})
	case events.StableListingSubmitted:
		return m.notify(ctx, scheduler.ListingNotifyPayload{
			Kind:       email.ListingStable,
			DocumentID: e.StableID.String(),
			UserID:     e.UserID.String(),
			Type:       e.KindOfStable,
			NameEn:     e.NameEn,
			NameAr:     e.NameAr,
		})
	case events.AssetsOrphaned:
		return m.cleanup(ctx, scheduler.AssetsCleanupPayload{AssetIDs: e.AssetIDs, Reason: e.Reason})
	case events.OrderStatusChanged:
		m.log.Info("order status changed", "orderId", e.OrderID, "actorId", e.ActorID, "from", e.From, "to", e.To)
		return nil
	case events.ReservationDecided:
		m.log.Info("reservation decided", "reservationId", e.ReservationID, "stableId", e.StableID, "status", e.Status)
		return nil
	default:
		return nil
	}
}

func (m *Module) notify(ctx context.Context, payload scheduler.ListingNotifyPayload) error {
	if m.enqueuer != nil {
		if err := m.enqueuer.EnqueueListingNotify(ctx, payload); err != nil {
			m.log.BackendError("notification.enqueue_listing", err)
			return err
		}
		return nil
	}
	if m.adminEmail == "" || m.mailer == nil {
		return nil
	}
	err := m.mailer.SendListingSubmitted(ctx, m.adminEmail, email.ListingNotice{
		Kind:       payload.Kind,
		DocumentID: payload.DocumentID,
		UserID:     payload.UserID,
		Type:       payload.Type,
		NameEn:     payload.NameEn,
		NameAr:     payload.NameAr,
		Edited:     payload.Edited,
	})
	if err != nil {
		m.log.BackendError("notification.send_listing", err)
	}
	return err
}

func (m *Module) cleanup(ctx context.Context, payload scheduler.AssetsCleanupPayload) error {
	if len(payload.AssetIDs) == 0 {
		return nil
	}
	if m.enqueuer != nil {
		if err := m.enqueuer.EnqueueAssetsCleanup(ctx, payload); err != nil {
			m.log.BackendError("notification.enqueue_cleanup", err)
			return err
		}
		return nil
	}
	if m.assets == nil {
		return nil
	}
	var errs []error
	for _, id := range payload.AssetIDs {
		if err := m.assets.Delete(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		m.log.BackendError("notification.cleanup", err)
		return err
	}
	return nil
}
