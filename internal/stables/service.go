package stables

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/internal/listings"
	"horse_portal_backend/internal/locations"
	"horse_portal_backend/internal/wizard"
	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/config"
	"horse_portal_backend/platform/logger"
)

// ProfilePath is where ineligible users are sent.
const ProfilePath = "/profile"

const wizardName = "stable"

type session struct {
	ctrl     *wizard.Controller[FormData]
	cascade  *locations.Cascade
	autosave *wizard.Autosaver

	mu    sync.Mutex
	files map[string]listings.StagedFile
}

func (s *session) filesCopy() map[string]listings.StagedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]listings.StagedFile, len(s.files))
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

// View is what a client needs to render the stable wizard.
type View struct {
	SessionID  uuid.UUID          `json:"sessionId"`
	State      wizard.State       `json:"state"`
	Form       FormData           `json:"form"`
	Locations  locations.Snapshot `json:"locations"`
	Kinds      []string           `json:"kindsOfStable"`
	Amenities  []string           `json:"amenities"`
	PriceUnits []string           `json:"priceUnits"`
}

// Service runs stable wizard sessions.
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

// CheckEligibility returns the user's profile when they are a stable owner
// without a stable. Other users get an error that redirects to the profile.
func (s *Service) CheckEligibility(ctx context.Context, userID uuid.UUID, tr i18n.Translator) (contentstore.Document, error) {
	delay := s.cfg.GetRedirectDelay()
	user, err := contentstore.FindUser(ctx, s.store, userID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return contentstore.Document{}, apperr.Forbidden(tr.T(i18n.MsgStableOwnerOnly)).WithRedirect(ProfilePath, delay)
		}
		return contentstore.Document{}, apperr.Unavailable("failed to load user profile", err)
	}
	if user.String("userType") != contentstore.UserTypeStableOwner {
		return contentstore.Document{}, apperr.Forbidden(tr.T(i18n.MsgStableOwnerOnly)).WithRedirect(ProfilePath, delay)
	}

	existing, err := s.store.Count(ctx, contentstore.Query{
		Type:    contentstore.TypeStable,
		Filters: []contentstore.Filter{contentstore.OwnedBy(userID)},
	})
	if err != nil {
		return contentstore.Document{}, apperr.Unavailable("failed to check existing stables", err)
	}
	if existing > 0 {
		return contentstore.Document{}, apperr.Conflict(tr.T(i18n.MsgStableAlreadyExists)).WithRedirect(ProfilePath, delay)
	}
	return user, nil
}

// Open checks eligibility and starts a wizard, restoring a saved draft.
func (s *Service) Open(ctx context.Context, userID uuid.UUID, locale string) (View, error) {
	tr := i18n.New(locale)
	if _, err := s.CheckEligibility(ctx, userID, tr); err != nil {
		return View{}, err
	}

	sess := &session{
		ctrl:    wizard.NewController(NewSteps(s.region), NewFormData, tr),
		cascade: locations.NewCascade(s.source, tr, s.log),
		files:   make(map[string]listings.StagedFile),
	}
	key := wizard.DraftKey(wizard.StableDraftPrefix, userID)
	draft, ok, err := wizard.LoadDraft[FormData](ctx, s.drafts, key)
	if err != nil {
		s.log.BackendError("stables.draft_load", err)
	}
	if ok {
		draft.Images = []listings.MediaRef{}
		sess.ctrl.Restore(draft)
	}
	sess.autosave = wizard.NewAutosaver(s.drafts, key, s.cfg.GetAutosaveInterval(), s.cfg.GetDraftTTL(),
		wizard.ControllerSnapshot(sess.ctrl, FormData.HasContent), s.log)
	sess.autosave.Start(ctx)

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

	id := s.sessions.Open(userID, sess, sess.autosave.Stop)
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
		switch in.Type {
		case IntentSelectCountry:
			err = sess.cascade.SelectCountry(ctx, in.Value)
		case IntentSelectGovernorate:
			err = sess.cascade.SelectGovernorate(ctx, in.Value)
		default:
			err = sess.cascade.SelectCity(in.Value)
		}
		if err != nil {
			return View{}, err
		}
		sel := sess.cascade.Selection()
		err = sess.ctrl.Edit(func(f *FormData) error {
			f.Country, f.Government, f.City = sel.Country, sel.Governorate, sel.City
			return nil
		})
		if err != nil {
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

// Stage adds an image to the gallery.
func (s *Service) Stage(id, userID uuid.UUID, file listings.StagedFile) (View, error) {
	sess, err := s.sessions.Get(id, userID)
	if err != nil {
		return View{}, err
	}
	if err := s.assets.Validate(file.ContentType, int64(len(file.Data))); err != nil {
		return View{}, err
	}
	ref := listings.MediaRef{
		StagingID:   uuid.NewString(),
		FileName:    file.FileName,
		ContentType: file.ContentType,
		Size:        int64(len(file.Data)),
	}
	err = sess.ctrl.Edit(func(f *FormData) error {
		if len(f.Images) >= listings.MaxGalleryImages {
			return apperr.BadRequest(sess.ctrl.Translator().T(i18n.MsgGalleryLimit, listings.MaxGalleryImages))
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
	return s.view(id, sess), nil
}

// Next validates the current step and advances when it passes.
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

// Submit re-checks eligibility and stores the stable.
func (s *Service) Submit(ctx context.Context, id, userID uuid.UUID) (uuid.UUID, error) {
	sess, err := s.sessions.Get(id, userID)
	if err != nil {
		return uuid.Nil, err
	}
	tr := sess.ctrl.Translator()

	var stableID uuid.UUID
	err = sess.ctrl.Submit(ctx, func(ctx context.Context, form FormData) error {
		user, eligErr := s.CheckEligibility(ctx, userID, tr)
		if eligErr != nil {
			return eligErr
		}
		var submitErr error
		stableID, submitErr = s.submitter.Submit(ctx, Submission{
			UserID: userID,
			User:   user,
			Form:   form,
			Files:  sess.filesCopy(),
			Tr:     tr,
		})
		return submitErr
	})
	if err != nil {
		return uuid.Nil, err
	}
	if closeErr := s.sessions.Close(id, userID); closeErr != nil {
		s.log.BackendError("stables.session_close", closeErr)
	}
	return stableID, nil
}

// Close ends a session without submitting.
func (s *Service) Close(id, userID uuid.UUID) error {
	return s.sessions.Close(id, userID)
}

func (s *Service) view(id uuid.UUID, sess *session) View {
	v := View{
		SessionID:  id,
		Locations:  sess.cascade.Snapshot(),
		Kinds:      KindsOfStable,
		Amenities:  Amenities,
		PriceUnits: listings.PriceUnits,
	}
	sess.ctrl.View(func(form FormData, state wizard.State) {
		v.State = state
		v.Form = form.clone()
	})
	return v
}
