package stables

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/events"
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/internal/listings"
	"horse_portal_backend/internal/wizard"
	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/logger"
	"horse_portal_backend/platform/phone"
	"horse_portal_backend/platform/sanitize"
)

// BuildPayload turns a validated form into the stables document body.
func BuildPayload(f FormData, userID uuid.UUID, region string, imageIDs []string) map[string]any {
	b := f.BoardingDetails
	return map[string]any{
		"name_ar":             sanitize.Text(f.NameAr),
		"name_en":             sanitize.Text(f.NameEn),
		"kindOfStable":        f.KindOfStable,
		"description_ar":      sanitize.Text(f.DescriptionAr),
		"description_en":      sanitize.Text(f.DescriptionEn),
		"years_of_experience": number(f.YearsOfExperience),
		"country":             contentstore.Ref(f.Country),
		"government":          contentstore.Ref(f.Government),
		"city":                contentstore.Ref(f.City),
		"addressDetails":      sanitize.Text(f.AddressDetails),
		"addressLink":         strings.TrimSpace(f.AddressLink),
		"servicePhone":        phone.NormalizeE164(f.ServicePhone, region),
		"serviceEmail":        strings.TrimSpace(f.ServiceEmail),
		"boardingDetails": map[string]any{
			"boarding_capacity":   number(b.BoardingCapacity),
			"boarding_price":      number(b.BoardingPrice),
			"boarding_price_unit": b.BoardingPriceUnit,
			"amenities":           append([]string{}, b.Amenities...),
			"additionalServices": lo.Map(b.AdditionalServices, func(item listings.ListItem, _ int) map[string]any {
				row := map[string]any{"name_ar": sanitize.Text(item.NameAr), "name_en": sanitize.Text(item.NameEn)}
				if p := number(item.Price); p != nil {
					row["price"] = p
				}
				return row
			}),
		},
		"fileLink":            strings.TrimSpace(f.FileLink),
		"images":              lo.Map(imageIDs, func(id string, _ int) map[string]any { return contentstore.Image(id) }),
		"userRef":             contentstore.Ref(userID.String()),
		"horses":              []any{},
		"fullTimeServices":    []any{},
		"freelancerServices":  []any{},
		"statusAdminApproved": false,
	}
}

func number(raw string) any {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return d.InexactFloat64()
}

// Submission is one validated stable form ready to be stored.
type Submission struct {
	UserID uuid.UUID
	User   contentstore.Document
	Form   FormData
	Files  map[string]listings.StagedFile
	Tr     i18n.Translator
}

// Submitter uploads the gallery, creates the stable and links it to the user.
type Submitter struct {
	store  contentstore.Store
	assets contentstore.AssetStore
	drafts wizard.DraftStore
	bus    events.Bus
	region string
	log    *logger.Logger
}

// NewSubmitter creates a Submitter.
func NewSubmitter(store contentstore.Store, assets contentstore.AssetStore, drafts wizard.DraftStore, bus events.Bus, region string, log *logger.Logger) *Submitter {
	return &Submitter{store: store, assets: assets, drafts: drafts, bus: bus, region: region, log: log}
}

// Submit stores the stable. A failure after uploads started reports the
// uploaded assets through AssetsOrphaned.
func (s *Submitter) Submit(ctx context.Context, sub Submission) (uuid.UUID, error) {
	uploads := make([]contentstore.AssetUpload, 0, len(sub.Form.Images))
	for _, m := range sub.Form.Images {
		file, ok := sub.Files[m.StagingID]
		if !ok {
			return uuid.Nil, apperr.BadRequest(fmt.Sprintf("staged file %s is no longer available", m.StagingID))
		}
		uploads = append(uploads, contentstore.AssetUpload{
			Folder:      "stables/" + sub.UserID.String(),
			FileName:    file.FileName,
			ContentType: file.ContentType,
			Data:        file.Data,
		})
	}
	if err := contentstore.ValidateAll(s.assets, uploads); err != nil {
		return uuid.Nil, err
	}

	stored, uploaded, err := contentstore.UploadAll(ctx, s.assets, uploads)
	if err != nil {
		s.log.BackendError("stables.upload", err)
		s.orphan(ctx, uploaded, "stable upload failed")
		return uuid.Nil, apperr.Unavailable(sub.Tr.T(i18n.MsgUploadFailed), err)
	}
	imageIDs := lo.Map(stored, func(a contentstore.Asset, _ int) string { return a.ID })

	doc, err := s.store.Create(ctx, contentstore.TypeStable, &sub.UserID, BuildPayload(sub.Form, sub.UserID, s.region, imageIDs))
	if err != nil {
		s.log.BackendError("stables.create", err)
		s.orphan(ctx, uploaded, "stable document write failed")
		return uuid.Nil, apperr.Unavailable(sub.Tr.T(i18n.MsgSubmissionFailed), err)
	}

	// Eligibility is decided by the stable's userRef; stableRef is best effort.
	if _, err := contentstore.Patch(s.store, sub.User.ID).
		Set(map[string]any{"stableRef": contentstore.Ref(doc.ID.String())}).
		Commit(ctx); err != nil {
		s.log.BackendError("stables.link_user", err)
	}

	s.bus.Publish(ctx, events.StableListingSubmitted{
		BaseEvent:    events.NewBaseEvent(),
		StableID:     doc.ID,
		UserID:       sub.UserID,
		KindOfStable: sub.Form.KindOfStable,
		NameEn:       doc.String("name_en"),
		NameAr:       doc.String("name_ar"),
	})
	if err := s.drafts.Delete(ctx, wizard.DraftKey(wizard.StableDraftPrefix, sub.UserID)); err != nil {
		s.log.BackendError("stables.draft_delete", err)
	}
	return doc.ID, nil
}

func (s *Submitter) orphan(ctx context.Context, ids []string, reason string) {
	if len(ids) == 0 {
		return
	}
	s.bus.Publish(ctx, events.AssetsOrphaned{BaseEvent: events.NewBaseEvent(), AssetIDs: ids, Reason: reason})
}
