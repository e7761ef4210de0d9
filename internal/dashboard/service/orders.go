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

var orderTransitions = map[string]map[string][]string{
	repository.SideProvider: {
		repository.OrderPending:  {repository.OrderAccepted, repository.OrderRejected},
		repository.OrderAccepted: {repository.OrderCompleted},
	},
	repository.SideBuyer: {
		repository.OrderPending: {repository.OrderCancelled},
	},
}

// CanTransition reports whether the given side may move an order from one status to another.
func CanTransition(side, from, to string) bool {
	return lo.Contains(orderTransitions[side][from], to)
}

// Orders lists the user's orders. role is "buyer" (default) or "provider".
func (s *Service) Orders(ctx context.Context, userID uuid.UUID, req transport.ListOrdersRequest) ([]transport.OrderResponse, error) {
	side := repository.SideBuyer
	if req.Role == "provider" {
		side = repository.SideProvider
	}
	var statuses []string
	if req.Status != "" {
		statuses = append(statuses, req.Status)
	}
	docs, err := s.repo.Orders(ctx, userID, side, statuses...)
	if err != nil {
		return nil, err
	}
	return lo.Map(docs, func(d contentstore.Document, _ int) transport.OrderResponse { return mapOrder(d) }), nil
}

// UpdateOrderStatus moves an order the user is part of.
func (s *Service) UpdateOrderStatus(ctx context.Context, tr i18n.Translator, userID, orderID uuid.UUID, to string) (transport.OrderResponse, error) {
	order, err := s.repo.Typed(ctx, contentstore.TypeOrder, orderID)
	if err != nil {
		return transport.OrderResponse{}, err
	}

	uid := userID.String()
	from := order.String("status")
	var sides []string
	if order.RefID(repository.SideProvider) == uid {
		sides = append(sides, repository.SideProvider)
	}
	if order.RefID(repository.SideBuyer) == uid {
		sides = append(sides, repository.SideBuyer)
	}
	if len(sides) == 0 {
		return transport.OrderResponse{}, apperr.Forbidden("not your order")
	}
	if !lo.SomeBy(sides, func(side string) bool { return CanTransition(side, from, to) }) {
		return transport.OrderResponse{}, apperr.Conflict(tr.T(i18n.MsgInvalidStatusChange))
	}

	updated, err := s.repo.SetStatus(ctx, orderID, from, to)
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return transport.OrderResponse{}, apperr.Conflict(tr.T(i18n.MsgInvalidStatusChange))
		}
		return transport.OrderResponse{}, err
	}
	s.bus.Publish(ctx, events.OrderStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		OrderID:   orderID,
		ActorID:   userID,
		From:      from,
		To:        to,
	})
	return mapOrder(updated), nil
}

func mapOrder(d contentstore.Document) transport.OrderResponse {
	return transport.OrderResponse{
		ID:         d.ID,
		ServiceID:  d.RefID("serviceRef"),
		BuyerID:    d.RefID(repository.SideBuyer),
		ProviderID: d.RefID(repository.SideProvider),
		Status:     d.String("status"),
		Price:      amount(d.Body["price"]).StringFixed(2),
		Currency:   currencyOf(d.String("currency")),
		OrderDate:  d.String("orderDate"),
		Paid:       boolField(d, "paid"),
		Notes:      d.String("notes"),
	}
}
