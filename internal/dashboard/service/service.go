// Package service implements the dashboard tabs. Every operation is scoped to
// the authenticated user.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"horse_portal_backend/internal/auth"
	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/dashboard/repository"
	"horse_portal_backend/internal/events"
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/logger"
)

// DefaultCurrency is used for amounts stored without a currency.
const DefaultCurrency = "EGP"

// Service provides the dashboard business logic.
type Service struct {
	repo     *repository.Repository
	assets   contentstore.AssetStore
	accounts auth.Accounts
	bus      events.Bus
	region   string
	log      *logger.Logger
}

// New creates a dashboard service.
func New(repo *repository.Repository, assets contentstore.AssetStore, accounts auth.Accounts, bus events.Bus, region string, log *logger.Logger) *Service {
	return &Service{repo: repo, assets: assets, accounts: accounts, bus: bus, region: region, log: log}
}

// requireUserType loads the profile and rejects users of another type.
func (s *Service) requireUserType(ctx context.Context, tr i18n.Translator, userID uuid.UUID, userType, msgKey string) (contentstore.Document, error) {
	user, err := s.repo.Profile(ctx, userID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return contentstore.Document{}, apperr.Forbidden(tr.T(msgKey))
		}
		return contentstore.Document{}, err
	}
	if user.String("userType") != userType {
		return contentstore.Document{}, apperr.Forbidden(tr.T(msgKey))
	}
	return user, nil
}

func (s *Service) orphan(ctx context.Context, reason string, ids ...string) {
	ids = nonEmpty(ids)
	if len(ids) == 0 {
		return
	}
	s.bus.Publish(ctx, events.AssetsOrphaned{BaseEvent: events.NewBaseEvent(), AssetIDs: ids, Reason: reason})
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// amount reads a stored number or numeric string.
func amount(v any) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err == nil {
			return d
		}
	}
	return decimal.Zero
}

// parseAmount validates a non-negative decimal supplied by a client.
func parseAmount(tr i18n.Translator, field, raw, msgKey string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		msg := tr.T(msgKey)
		return decimal.Zero, apperr.Validation(msg).WithDetails(map[string]string{field: msg})
	}
	return d, nil
}

func currencyOf(raw string) string {
	c := strings.ToUpper(strings.TrimSpace(raw))
	if c == "" {
		return DefaultCurrency
	}
	return c
}

func boolField(doc contentstore.Document, key string) bool {
	b, _ := doc.Body[key].(bool)
	return b
}

func intField(doc contentstore.Document, key string) *int {
	f, ok := doc.Body[key].(float64)
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}
