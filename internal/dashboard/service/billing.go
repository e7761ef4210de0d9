package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/dashboard/transport"
)

// Billing lists paid orders with totals per currency.
func (s *Service) Billing(ctx context.Context, userID uuid.UUID) (transport.BillingResponse, error) {
	docs, err := s.repo.PaidOrders(ctx, userID)
	if err != nil {
		return transport.BillingResponse{}, err
	}
	orders := lo.Map(docs, func(d contentstore.Document, _ int) transport.OrderResponse { return mapOrder(d) })
	return transport.BillingResponse{Orders: orders, Totals: Totals(orders)}, nil
}

// Totals sums order prices per currency, ordered by currency code.
func Totals(orders []transport.OrderResponse) []transport.CurrencyTotal {
	groups := lo.GroupBy(orders, func(o transport.OrderResponse) string { return o.Currency })
	currencies := lo.Keys(groups)
	sort.Strings(currencies)

	totals := make([]transport.CurrencyTotal, 0, len(currencies))
	for _, currency := range currencies {
		sum := decimal.Zero
		for _, o := range groups[currency] {
			sum = sum.Add(amount(o.Price))
		}
		totals = append(totals, transport.CurrencyTotal{
			Currency: currency,
			Total:    sum.StringFixed(2),
			Orders:   len(groups[currency]),
		})
	}
	return totals
}
