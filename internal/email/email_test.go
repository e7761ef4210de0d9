package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horse_portal_backend/platform/config"
	"horse_portal_backend/platform/logger"
)

func TestRenderListingSubmitted(t *testing.T) {
	subject, body, err := renderListingSubmitted(ListingNotice{
		Kind:       ListingService,
		DocumentID: "doc-1",
		Type:       "veterinary",
		NameEn:     "Dr. <Hoof>",
		NameAr:     "الطبيب",
	})
	require.NoError(t, err)
	assert.Equal(t, "New service listing awaiting approval: Dr. <Hoof>", subject)
	assert.Contains(t, body, "Dr. &lt;Hoof&gt;")
	assert.Contains(t, body, "veterinary")
	assert.Contains(t, body, "doc-1")
}

func TestRenderListingSubjects(t *testing.T) {
	subject, _, err := renderListingSubmitted(ListingNotice{Kind: ListingService, NameEn: "Farrier", Edited: true})
	require.NoError(t, err)
	assert.Equal(t, "Service listing updated: Farrier", subject)

	subject, _, err = renderListingSubmitted(ListingNotice{Kind: ListingStable, NameEn: "Nile"})
	require.NoError(t, err)
	assert.Equal(t, "New stable awaiting approval: Nile", subject)
}

func TestNewFromConfigFallsBackToNoop(t *testing.T) {
	sender := NewFromConfig(&config.Config{}, logger.Nop())
	_, ok := sender.(NoopSender)
	require.True(t, ok)
	assert.NoError(t, sender.SendListingSubmitted(context.Background(), "admin@example.com", ListingNotice{}))

	sender = NewFromConfig(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587, EmailFromAddress: "noreply@example.com", AdminNotifyEmail: "admin@example.com"}, logger.Nop())
	_, ok = sender.(*SMTPSender)
	assert.True(t, ok)
}
