// Package repository reads and writes the documents behind the dashboard tabs.
package repository

import (
	"context"

	"github.com/google/uuid"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/platform/apperr"
)

// Order statuses.
const (
	OrderPending   = "pending"
	OrderAccepted  = "accepted"
	OrderRejected  = "rejected"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Reservation statuses.
const (
	ReservationPending  = "pending"
	ReservationApproved = "approved"
	ReservationRejected = "rejected"
)

// Order sides. The value is the body field holding the user reference.
const (
	SideBuyer    = "buyerRef"
	SideProvider = "providerRef"
)

// Repository is the dashboard view of the content store.
type Repository struct {
	store contentstore.Store
}

// New creates a Repository.
func New(store contentstore.Store) *Repository {
	return &Repository{store: store}
}

// Store exposes the underlying document store.
func (r *Repository) Store() contentstore.Store { return r.store }

// Profile returns the user document of userID.
func (r *Repository) Profile(ctx context.Context, userID uuid.UUID) (contentstore.Document, error) {
	return contentstore.FindUser(ctx, r.store, userID)
}

// PatchProfile merges fields into the user document.
func (r *Repository) PatchProfile(ctx context.Context, docID uuid.UUID, fields map[string]any) (contentstore.Document, error) {
	return contentstore.Patch(r.store, docID).Set(fields).Commit(ctx)
}

// Count returns the number of documents of docType matching filters.
func (r *Repository) Count(ctx context.Context, docType string, filters ...contentstore.Filter) (int, error) {
	return r.store.Count(ctx, contentstore.Query{Type: docType, Filters: filters})
}

// Orders lists the orders where userID is on side, newest first.
func (r *Repository) Orders(ctx context.Context, userID uuid.UUID, side string, statuses ...string) ([]contentstore.Document, error) {
	filters := []contentstore.Filter{contentstore.Eq(side+"._ref", userID.String())}
	if len(statuses) > 0 {
		filters = append(filters, contentstore.In("status", statuses...))
	}
	return r.store.Fetch(ctx, contentstore.Query{
		Type:    contentstore.TypeOrder,
		Filters: filters,
		OrderBy: "orderDate",
		Desc:    true,
	})
}

// PaidOrders lists the buyer's paid orders.
func (r *Repository) PaidOrders(ctx context.Context, userID uuid.UUID) ([]contentstore.Document, error) {
	return r.store.Fetch(ctx, contentstore.Query{
		Type: contentstore.TypeOrder,
		Filters: []contentstore.Filter{
			contentstore.Eq(SideBuyer+"._ref", userID.String()),
			contentstore.Eq("paid", "true"),
		},
		OrderBy: "orderDate",
		Desc:    true,
	})
}

// Typed returns document id when it has docType.
func (r *Repository) Typed(ctx context.Context, docType string, id uuid.UUID) (contentstore.Document, error) {
	doc, err := r.store.Get(ctx, id)
	if err != nil {
		return contentstore.Document{}, err
	}
	if doc.Type != docType {
		return contentstore.Document{}, apperr.NotFound(docType + " not found")
	}
	return doc, nil
}

// SetStatus moves a document from one status to another. It returns a
// conflict when the stored status is no longer from.
func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, from, to string) (contentstore.Document, error) {
	return contentstore.Patch(r.store, id).
		Set(map[string]any{"status": to}).
		Where(contentstore.Eq("status", from)).
		Commit(ctx)
}

// Favorites lists the user's favorites.
func (r *Repository) Favorites(ctx context.Context, userID uuid.UUID) ([]contentstore.Document, error) {
	return r.store.Fetch(ctx, contentstore.Query{
		Type:    contentstore.TypeFavorite,
		Filters: []contentstore.Filter{contentstore.OwnedBy(userID)},
		Desc:    true,
	})
}

// Favorite returns the user's favorite of serviceID, if any.
func (r *Repository) Favorite(ctx context.Context, userID uuid.UUID, serviceID string) (contentstore.Document, bool, error) {
	docs, err := r.store.Fetch(ctx, contentstore.Query{
		Type: contentstore.TypeFavorite,
		Filters: []contentstore.Filter{
			contentstore.OwnedBy(userID),
			contentstore.Eq("serviceRef._ref", serviceID),
		},
		Limit: 1,
	})
	if err != nil || len(docs) == 0 {
		return contentstore.Document{}, false, err
	}
	return docs[0], true, nil
}

// Stable returns the stable owned by userID, if any.
func (r *Repository) Stable(ctx context.Context, userID uuid.UUID) (contentstore.Document, bool, error) {
	docs, err := r.store.Fetch(ctx, contentstore.Query{
		Type:    contentstore.TypeStable,
		Filters: []contentstore.Filter{contentstore.OwnedBy(userID)},
		Limit:   1,
	})
	if err != nil || len(docs) == 0 {
		return contentstore.Document{}, false, err
	}
	return docs[0], true, nil
}

// Reservations lists the reservations of a stable, newest first.
func (r *Repository) Reservations(ctx context.Context, stableID uuid.UUID) ([]contentstore.Document, error) {
	return r.store.Fetch(ctx, contentstore.Query{
		Type:    contentstore.TypeReservation,
		Filters: []contentstore.Filter{contentstore.Eq("stableRef._ref", stableID.String())},
		Desc:    true,
	})
}

// Owned lists documents of docType whose userRef is userID.
func (r *Repository) Owned(ctx context.Context, docType string, userID uuid.UUID) ([]contentstore.Document, error) {
	return r.store.Fetch(ctx, contentstore.Query{
		Type:    docType,
		Filters: []contentstore.Filter{contentstore.OwnedBy(userID)},
		Desc:    true,
	})
}

// GetOwned returns document id of docType when userID owns it.
func (r *Repository) GetOwned(ctx context.Context, docType string, id, userID uuid.UUID) (contentstore.Document, error) {
	doc, err := r.Typed(ctx, docType, id)
	if err != nil {
		return contentstore.Document{}, err
	}
	if doc.RefID("userRef") != userID.String() {
		return contentstore.Document{}, apperr.Forbidden("not your " + docType)
	}
	return doc, nil
}

// CreateOwned stores a document of docType referencing userID.
func (r *Repository) CreateOwned(ctx context.Context, docType string, userID uuid.UUID, body map[string]any) (contentstore.Document, error) {
	body["userRef"] = contentstore.Ref(userID.String())
	return r.store.Create(ctx, docType, &userID, body)
}

// Update applies set and unset to document id.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, set map[string]any, unset ...string) (contentstore.Document, error) {
	return contentstore.Patch(r.store, id).Set(set).Unset(unset...).Commit(ctx)
}

// Delete removes document id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, id)
}
