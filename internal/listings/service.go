package listings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/internal/locations"
	"horse_portal_backend/internal/wizard"
	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/config"
	"horse_portal_backend/platform/logger"
)

// Media slots accepted by Stage.
const (
	SlotPrimary = "primary"
	SlotGallery = "gallery"
)

const wizardName = "service"

// session is one open service wizard.
type session struct {
	ctrl     *wizard.Controller[FormData]
	cascade  *locations.Cascade
	editing  *uuid.UUID
	autosave *wizard.Autosaver

	mu    sync.Mutex
	files map[string]StagedFile
}

func (s *session) filesCopy() map[string]StagedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]StagedFile, len(s.files))
	for k, v := range s.files {
		out[k] = v
	}
	return out
}

func (s *session) release(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.files, id)
	}
}

// View is what a client needs to render the wizard.
type View struct {
	SessionID    uuid.UUID          `json:"sessionId"`
	EditingID    *uuid.UUID         `json:"editingId,omitempty"`
	State        wizard.State       `json:"state"`
	Form         FormData           `json:"form"`
	Fields       []FieldSpec        `json:"fields"`
	Locations    locations.Snapshot `json:"locations"`
	ServiceTypes []ServiceType      `json:"serviceTypes"`
	PriceUnits   []string           `json:"priceUnits"`
}

// Service runs service wizard sessions.
type Service struct {
	sessions  *wizard.Registry[*session]
	store     contentstore.Store
	assets    contentstore.AssetStore
	source    locations.Source
	drafts    wizard.DraftStore
	submitter *Submitter
	cfg       config.WizardConfig
	region    string
	log       *logger.Logger
}

// NewService creates a Service.
func NewService(store contentstore.Store, assets contentstore.AssetStore, source locations.Source, drafts wizard.DraftStore, submitter *Submitter, cfg config.WizardConfig, region string, log *logger.Logger) *Service {
	return &Service{
		sessions:  wizard.NewRegistry[*session](),
		store:     store,
		assets:    assets,
		source:    source,
		drafts:    drafts,
		submitter: submitter,
		cfg:       cfg,
		region:    region,
		log:       log,
	}
}

// RunJanitor closes sessions idle for longer than maxIdle until ctx ends.
func (s *Service) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	s.sessions.RunJanitor(ctx, interval, maxIdle)
}

// Shutdown closes every open session so autosavers stop.
func (s *Service) Shutdown() { s.sessions.CloseAll() }

// Open starts a wizard for userID. With editID the stored service is loaded
// for editing; otherwise a saved draft is restored when present and the form
// is autosaved while the session stays open.
func (s *Service) Open(ctx context.Context, userID uuid.UUID, locale string, editID *uuid.UUID) (View, error) {
	tr := i18n.New(locale)
	sess := &session{
		ctrl:    wizard.NewController(NewSteps(s.region), NewFormData, tr),
		cascade: locations.NewCascade(s.source, tr, s.log),
		editing: editID,
		files:   make(map[string]StagedFile),
	}

	if editID != nil {
		doc, err := s.store.Get(ctx, *editID)
		if err != nil {
			return View{}, err
		}
		if doc.Type != contentstore.TypeService {
			return View{}, apperr.NotFound("service not found")
		}
		if doc.OwnerID == nil || *doc.OwnerID != userID {
			return View{}, apperr.Forbidden("service belongs to another user")
		}
		sess.ctrl.Restore(FormFromDocument(doc))
	} else {
		key := wizard.DraftKey(wizard.ServiceDraftPrefix, userID)
		draft, ok, err := wizard.LoadDraft[FormData](ctx, s.drafts, key)
		if err != nil {
			s.log.BackendError("listings.draft_load", err)
		}
		if ok {
			sess.ctrl.Restore(dropStagedMedia(draft))
		}
		sess.autosave = wizard.NewAutosaver(s.drafts, key, s.cfg.GetAutosaveInterval(), s.cfg.GetDraftTTL(),
			wizard.ControllerSnapshot(sess.ctrl, FormData.HasContent), s.log)
		sess.autosave.Start(ctx)
	}

	form := sess.ctrl.Form()
	saved := locations.Selection{Country: form.Country, Governorate: form.Government, City: form.City}
	sess.cascade.Restore(ctx, saved)
	// Ids the cascade could not replay are dropped from the form.
	if sel := sess.cascade.Selection(); sel != saved {
		_ = sess.ctrl.Edit(func(f *FormData) error {
			f.Country, f.Government, f.City = sel.Country, sel.Governorate, sel.City
			return nil
		})
	}

	id := s.sessions.Open(userID, sess, func() {
		if sess.autosave != nil {
			sess.autosave.Stop()
		}
	})
	sess.ctrl.OnTransition(func(from, to int, ok bool) {
		s.log.WizardTransition(wizardName, id.String(), from, to, ok)
	})
	return s.view(id, sess), nil
}

// Get returns the current view of a session.
func (s *Service) Get(id, userID uuid.UUID) (View, error) {
	sess, err := s.sessions.Get(id, userID)
	if err != nil {
		return View{}, err
	}
	return s.view(id, sess), nil
}

// Apply runs one edit intent.
func (s *Service) Apply(ctx context.Context, id, userID uuid.UUID, in Intent) (View, error) {
	sess, err := s.sessions.Get(id, userID)
	if err != nil {
		return View{}, err
	}
	if in.IsLocation() {
		if err := s.selectLocation(ctx, sess, in); err != nil {
			return View{}, err
		}
		return s.view(id, sess), nil
	}

	var released []string
	err = sess.ctrl.Edit(func(f *FormData) error {
		var applyErr error
		released, applyErr = ApplyIntent(f, in)
		return applyErr
	})
	if err != nil {
		return View{}, err
	}
	sess.release(released)
	return s.view(id, sess), nil
}

func (s *Service) selectLocation(ctx context.Context, sess *session, in Intent) error {
	var err error
	switch in.Type {
	case IntentSelectCountry:
		err = sess.cascade.SelectCountry(ctx, in.Value)
	case IntentSelectGovernorate:
		err = sess.cascade.SelectGovernorate(ctx, in.Value)
	case IntentSelectCity:
		err = sess.cascade.SelectCity(in.Value)
	}
	if err != nil {
		return err
	}
	sel := sess.cascade.Selection()
	return sess.ctrl.Edit(func(f *FormData) error {
		f.Country, f.Government, f.City = sel.Country, sel.Governorate, sel.City
		return nil
	})
}

// Stage keeps an image in the session until submission. The file is checked
// against the asset rules right away.
func (s *Service) Stage(id, userID uuid.UUID, slot string, file StagedFile) (View, error) {
	sess, err := s.sessions.Get(id, userID)
	if err != nil {
		return View{}, err
	}
	if err := s.assets.Validate(file.ContentType, int64(len(file.Data))); err != nil {
		return View{}, err
	}
	if slot != SlotPrimary && slot != SlotGallery {
		return View{}, apperr.BadRequest(fmt.Sprintf("unknown media slot %q", slot))
	}

	ref := MediaRef{
		StagingID:   uuid.NewString(),
		FileName:    file.FileName,
		ContentType: file.ContentType,
		Size:        int64(len(file.Data)),
	}
	var released []string
	err = sess.ctrl.Edit(func(f *FormData) error {
		if slot == SlotPrimary {
			if f.Image != nil {
				released = stagingIDs(*f.Image)
			}
			f.Image = &ref
			return nil
		}
		if len(f.Images) >= MaxGalleryImages {
			return apperr.BadRequest(sess.ctrl.Translator().T(i18n.MsgGalleryLimit, MaxGalleryImages))
		}
		f.Images = append(f.Images, ref)
		return nil
	})
	if err != nil {
		return View{}, err
	}

	sess.mu.Lock()
	sess.files[ref.StagingID] = file
	sess.mu.Unlock()
	sess.release(released)
	return s.view(id, sess), nil
}

// Next validates the current step and advances when it passes. Field errors
// are part of the returned state.
func (s *Service) Next(id, userID uuid.UUID) (View, bool, error) {
	sess, err := s.sessions.Get(id, userID)
	if err != nil {
		return View{}, false, err
	}
	_, ok := sess.ctrl.Next()
	return s.view(id, sess), ok, nil
}

// Previous moves one step back.
func (s *Service) Previous(id, userID uuid.UUID) (View, error) {
	sess, err := s.sessions.Get(id, userID)
	if err != nil {
		return View{}, err
	}
	sess.ctrl.Previous()
	return s.view(id, sess), nil
}

// Submit persists the form from the review step. A successful submission
// closes the session.
func (s *Service) Submit(ctx context.Context, id, userID uuid.UUID) (uuid.UUID, error) {
	sess, err := s.sessions.Get(id, userID)
	if err != nil {
		return uuid.Nil, err
	}

	var serviceID uuid.UUID
	err = sess.ctrl.Submit(ctx, func(ctx context.Context, form FormData) error {
		var submitErr error
		serviceID, submitErr = s.submitter.Submit(ctx, Submission{
			UserID:    userID,
			EditingID: sess.editing,
			Form:      form,
			Files:     sess.filesCopy(),
			Tr:        sess.ctrl.Translator(),
		})
		return submitErr
	})
	if err != nil {
		return uuid.Nil, err
	}
	if sess.autosave != nil {
		sess.autosave.Stop()
	}
	if closeErr := s.sessions.Close(id, userID); closeErr != nil {
		s.log.BackendError("listings.session_close", closeErr)
	}
	return serviceID, nil
}

// Close ends a session without submitting. The draft is kept.
func (s *Service) Close(id, userID uuid.UUID) error {
	return s.sessions.Close(id, userID)
}

func (s *Service) view(id uuid.UUID, sess *session) View {
	v := View{
		SessionID:    id,
		EditingID:    sess.editing,
		Locations:    sess.cascade.Snapshot(),
		ServiceTypes: AllServiceTypes,
		PriceUnits:   PriceUnits,
	}
	sess.ctrl.View(func(form FormData, state wizard.State) {
		v.State = state
		v.Form = form.clone()
		v.Fields = Fields(form.Details)
	})
	return v
}

// dropStagedMedia removes media whose bytes only lived in a previous session.
func dropStagedMedia(f FormData) FormData {
	if f.Image != nil && !f.Image.Uploaded() {
		f.Image = nil
	}
	kept := make([]MediaRef, 0, len(f.Images))
	for _, m := range f.Images {
		if m.Uploaded() {
			kept = append(kept, m)
		}
	}
	f.Images = kept
	return f
}
