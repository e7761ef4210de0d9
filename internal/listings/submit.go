package listings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/events"
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/internal/wizard"
	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/logger"
)

// StagedFile is an image received by the media endpoint and held in the
// session until submission.
type StagedFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Submission is everything needed to persist one validated form.
type Submission struct {
	UserID    uuid.UUID
	EditingID *uuid.UUID
	Form      FormData
	Files     map[string]StagedFile
	Tr        i18n.Translator
}

// Submitter uploads staged media and writes the service document.
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

// Submit validates and uploads every staged file, then creates or patches
// the service exactly once. Uploaded assets of a failed submission are
// reported through AssetsOrphaned.
func (s *Submitter) Submit(ctx context.Context, sub Submission) (uuid.UUID, error) {
	pending, uploads, err := s.collect(sub)
	if err != nil {
		return uuid.Nil, err
	}
	if err := contentstore.ValidateAll(s.assets, uploads); err != nil {
		return uuid.Nil, err
	}

	stored, uploaded, err := contentstore.UploadAll(ctx, s.assets, uploads)
	if err != nil {
		s.log.BackendError("listings.upload", err)
		s.orphan(ctx, uploaded, "service upload failed")
		return uuid.Nil, apperr.Unavailable(sub.Tr.T(i18n.MsgUploadFailed), err)
	}
	assetIDs := make(map[string]string, len(pending))
	for i, stagingID := range pending {
		assetIDs[stagingID] = stored[i].ID
	}

	payload := BuildPayload(sub.Form, s.region, func(m MediaRef) string {
		if m.Uploaded() {
			return m.AssetID
		}
		return assetIDs[m.StagingID]
	})

	var doc contentstore.Document
	if sub.EditingID != nil {
		doc, err = contentstore.Patch(s.store, *sub.EditingID).
			Set(payload).
			Unset(InactivePayloadKeys(sub.Form.ServiceType)...).
			Commit(ctx)
	} else {
		doc, err = s.store.Create(ctx, contentstore.TypeService, &sub.UserID, NewServiceBody(payload, sub.UserID))
	}
	if err != nil {
		s.log.BackendError("listings.store", err)
		s.orphan(ctx, uploaded, "service document write failed")
		return uuid.Nil, apperr.Unavailable(sub.Tr.T(i18n.MsgSubmissionFailed), err)
	}

	s.bus.Publish(ctx, events.ServiceListingSubmitted{
		BaseEvent:   events.NewBaseEvent(),
		ServiceID:   doc.ID,
		UserID:      sub.UserID,
		ServiceType: string(sub.Form.ServiceType),
		NameEn:      doc.String("name_en"),
		NameAr:      doc.String("name_ar"),
		Edited:      sub.EditingID != nil,
	})
	if err := s.drafts.Delete(ctx, wizard.DraftKey(wizard.ServiceDraftPrefix, sub.UserID)); err != nil {
		s.log.BackendError("listings.draft_delete", err)
	}
	return doc.ID, nil
}

// collect lists the staged media that still needs uploading.
func (s *Submitter) collect(sub Submission) ([]string, []contentstore.AssetUpload, error) {
	media := make([]MediaRef, 0, len(sub.Form.Images)+1)
	if sub.Form.Image != nil {
		media = append(media, *sub.Form.Image)
	}
	media = append(media, sub.Form.Images...)

	folder := "services/" + sub.UserID.String()
	var (
		ids     []string
		uploads []contentstore.AssetUpload
	)
	for _, m := range media {
		if m.Uploaded() {
			continue
		}
		file, ok := sub.Files[m.StagingID]
		if !ok {
			return nil, nil, apperr.BadRequest(fmt.Sprintf("staged file %s is no longer available", m.StagingID))
		}
		ids = append(ids, m.StagingID)
		uploads = append(uploads, contentstore.AssetUpload{
			Folder:      folder,
			FileName:    file.FileName,
			ContentType: file.ContentType,
			Data:        file.Data,
		})
	}
	return ids, uploads, nil
}

func (s *Submitter) orphan(ctx context.Context, ids []string, reason string) {
	if len(ids) == 0 {
		return
	}
	s.bus.Publish(ctx, events.AssetsOrphaned{BaseEvent: events.NewBaseEvent(), AssetIDs: ids, Reason: reason})
}
