// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"horse_portal_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Listing Events
// =============================================================================

// ServiceListingSubmitted is published after a service document was created
// or patched by the service wizard.
type ServiceListingSubmitted struct {
	BaseEvent
	ServiceID   uuid.UUID `json:"serviceId"`
	UserID      uuid.UUID `json:"userId"`
	ServiceType string    `json:"serviceType"`
	NameEn      string    `json:"nameEn"`
	NameAr      string    `json:"nameAr"`
	Edited      bool      `json:"edited"`
}

func (e ServiceListingSubmitted) EventName() string { return "listings.service.submitted" }

// StableListingSubmitted is published after a stable document was created.
type StableListingSubmitted struct {
	BaseEvent
	StableID     uuid.UUID `json:"stableId"`
	UserID       uuid.UUID `json:"userId"`
	KindOfStable string    `json:"kindOfStable"`
	NameEn       string    `json:"nameEn"`
	NameAr       string    `json:"nameAr"`
}

func (e StableListingSubmitted) EventName() string { return "listings.stable.submitted" }

// AssetsOrphaned is published when a submission failed after some of its
// files were already uploaded. The listed assets are referenced by nothing.
type AssetsOrphaned struct {
	BaseEvent
	AssetIDs []string `json:"assetIds"`
	Reason   string   `json:"reason"`
}

func (e AssetsOrphaned) EventName() string { return "assets.orphaned" }

// =============================================================================
// Dashboard Events
// =============================================================================

// OrderStatusChanged is published when a provider or buyer moves an order.
type OrderStatusChanged struct {
	BaseEvent
	OrderID uuid.UUID `json:"orderId"`
	ActorID uuid.UUID `json:"actorId"`
	From    string    `json:"from"`
	To      string    `json:"to"`
}

func (e OrderStatusChanged) EventName() string { return "dashboard.order.status_changed" }

// ReservationDecided is published when a stable owner approves or rejects a reservation.
type ReservationDecided struct {
	BaseEvent
	ReservationID uuid.UUID `json:"reservationId"`
	StableID      uuid.UUID `json:"stableId"`
	Status        string    `json:"status"`
}

func (e ReservationDecided) EventName() string { return "dashboard.reservation.decided" }
