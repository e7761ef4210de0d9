package contentstore

import (
	"context"

	"github.com/google/uuid"

	"horse_portal_backend/platform/apperr"
)

// User types stored in the userType field of a user document.
const (
	UserTypeStableOwner = "stable_owner"
	UserTypeSupplier    = "supplier"
	UserTypeEducational = "educational_services"
)

// FindUser returns the profile document owned by userID.
func FindUser(ctx context.Context, store Store, userID uuid.UUID) (Document, error) {
	docs, err := store.Fetch(ctx, Query{Type: TypeUser, OwnerID: &userID, Limit: 1})
	if err != nil {
		return Document{}, err
	}
	if len(docs) == 0 {
		return Document{}, apperr.NotFound("user profile not found")
	}
	return docs[0], nil
}

// OwnedBy filters documents whose userRef points at userID.
func OwnedBy(userID uuid.UUID) Filter {
	return Eq("userRef._ref", userID.String())
}
