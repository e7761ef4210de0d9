// Package email delivers admin notifications about submitted listings.
package email

import (
	"context"

	"horse_portal_backend/platform/config"
	"horse_portal_backend/platform/logger"
)

// Listing kinds.
const (
	ListingService = "service"
	ListingStable  = "stable"
)

// ListingNotice describes a submitted listing awaiting approval.
type ListingNotice struct {
	Kind       string
	DocumentID string
	UserID     string
	Type       string
	NameEn     string
	NameAr     string
	Edited     bool
}

// Sender delivers notification emails.
type Sender interface {
	SendListingSubmitted(ctx context.Context, toEmail string, notice ListingNotice) error
}

// NoopSender logs instead of sending.
type NoopSender struct {
	log *logger.Logger
}

// NewNoopSender creates a NoopSender.
func NewNoopSender(log *logger.Logger) NoopSender { return NoopSender{log: log} }

func (s NoopSender) SendListingSubmitted(_ context.Context, toEmail string, notice ListingNotice) error {
	if s.log != nil {
		s.log.Info("email disabled, listing notice dropped", "to", toEmail, "kind", notice.Kind, "documentId", notice.DocumentID)
	}
	return nil
}

// NewFromConfig returns an SMTP sender when email is configured and a NoopSender otherwise.
func NewFromConfig(cfg config.EmailConfig, log *logger.Logger) Sender {
	if !cfg.IsEmailEnabled() {
		return NewNoopSender(log)
	}
	return NewSMTPSender(cfg.GetSMTPHost(), cfg.GetSMTPPort(), cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(), cfg.GetEmailFromName())
}
