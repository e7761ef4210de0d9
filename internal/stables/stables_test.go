package stables

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/events"
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/internal/listings"
	"horse_portal_backend/internal/locations"
	"horse_portal_backend/internal/wizard"
	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/config"
	"horse_portal_backend/platform/logger"
)

var en = i18n.New(i18n.English)

type capture struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *capture) Handle(_ context.Context, e events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

type env struct {
	store  *contentstore.MemoryStore
	assets *contentstore.MemoryAssetStore
	drafts *wizard.MemoryDraftStore
	bus    *events.InMemoryBus
	seen   *capture
	svc    *Service
	user   uuid.UUID
	userDo contentstore.Document

	country, governorate, city string
}

func newEnv(t *testing.T, userType string) *env {
	t.Helper()
	ctx := context.Background()
	e := &env{
		store:  contentstore.NewMemoryStore(),
		assets: contentstore.NewMemoryAssetStore(),
		drafts: wizard.NewMemoryDraftStore(),
		bus:    events.NewInMemoryBus(logger.Nop()),
		seen:   &capture{},
		user:   uuid.New(),
	}
	e.bus.Subscribe(events.StableListingSubmitted{}.EventName(), e.seen)
	e.bus.Subscribe(events.AssetsOrphaned{}.EventName(), e.seen)

	var err error
	e.userDo, err = e.store.Create(ctx, contentstore.TypeUser, &e.user, map[string]any{"userType": userType, "name_en": "Owner"})
	require.NoError(t, err)

	egypt, _ := e.store.Create(ctx, contentstore.TypeCountry, nil, map[string]any{"name_en": "Egypt"})
	giza, _ := e.store.Create(ctx, contentstore.TypeGovernorate, nil, map[string]any{"name_en": "Giza", "country": contentstore.Ref(egypt.ID.String())})
	saqqara, _ := e.store.Create(ctx, contentstore.TypeCity, nil, map[string]any{"name_en": "Saqqara", "governorate": contentstore.Ref(giza.ID.String())})
	e.country, e.governorate, e.city = egypt.ID.String(), giza.ID.String(), saqqara.ID.String()

	cfg := &config.Config{AutosaveInterval: time.Hour, DraftTTL: time.Hour, RedirectDelay: 3 * time.Second}
	sub := NewSubmitter(e.store, e.assets, e.drafts, e.bus, "EG", logger.Nop())
	e.svc = NewService(e.store, e.assets, locations.NewStoreSource(e.store), e.drafts, sub, cfg, "EG", logger.Nop())
	t.Cleanup(e.svc.Shutdown)
	return e
}

func (e *env) apply(t *testing.T, id uuid.UUID, intents ...Intent) {
	t.Helper()
	for _, in := range intents {
		_, err := e.svc.Apply(context.Background(), id, e.user, in)
		require.NoError(t, err, "intent %s", in.Type)
	}
}

func (e *env) next(t *testing.T, id uuid.UUID, want int) {
	t.Helper()
	view, ok, err := e.svc.Next(id, e.user)
	require.NoError(t, err)
	require.True(t, ok, "errors: %v", view.State.Errors)
	require.Equal(t, want, view.State.Step)
}

func (e *env) fill(t *testing.T, id uuid.UUID) {
	t.Helper()
	e.apply(t, id,
		Intent{Type: IntentSetField, Field: "name_ar", Value: "إسطبل النيل"},
		Intent{Type: IntentSetField, Field: "name_en", Value: "Nile Stables"},
		Intent{Type: IntentSetField, Field: "kindOfStable", Value: KindRidingSchool},
		Intent{Type: IntentSetField, Field: "description_ar", Value: "مدرسة فروسية"},
		Intent{Type: IntentSetField, Field: "description_en", Value: "Riding school"},
	)
	e.next(t, id, 2)
	e.apply(t, id,
		Intent{Type: IntentSelectCountry, Value: e.country},
		Intent{Type: IntentSelectGovernorate, Value: e.governorate},
		Intent{Type: IntentSelectCity, Value: e.city},
		Intent{Type: IntentSetField, Field: "servicePhone", Value: "01001234567"},
		Intent{Type: IntentSetField, Field: "serviceEmail", Value: "nile@example.com"},
	)
	e.next(t, id, 3)
	e.apply(t, id,
		Intent{Type: IntentSetField, Field: "boarding_capacity", Value: "12"},
		Intent{Type: IntentSetField, Field: "boarding_price", Value: "1500"},
		Intent{Type: IntentSetField, Field: "boarding_price_unit", Value: listings.PricePerMonth},
		Intent{Type: IntentToggleAmenity, Value: "arena", Checked: true},
		Intent{Type: IntentAppendService},
		Intent{Type: IntentUpdateService, Index: 0, ItemField: "name_ar", Value: "تدريب"},
		Intent{Type: IntentUpdateService, Index: 0, ItemField: "name_en", Value: "Training"},
	)
	for _, name := range []string{"a.jpg", "b.jpg"} {
		_, err := e.svc.Stage(id, e.user, listings.StagedFile{FileName: name, ContentType: "image/jpeg", Data: []byte("jpg")})
		require.NoError(t, err)
	}
	e.next(t, id, 4)
	e.apply(t, id,
		Intent{Type: IntentSetFlag, Field: "termsAccepted", Checked: true},
		Intent{Type: IntentSetFlag, Field: "confirmDataAccuracy", Checked: true},
	)
}

func (e *env) open(t *testing.T) uuid.UUID {
	t.Helper()
	view, err := e.svc.Open(context.Background(), e.user, i18n.English)
	require.NoError(t, err)
	return view.SessionID
}

func redirectOf(t *testing.T, err error) apperr.RedirectDetails {
	t.Helper()
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	details, ok := appErr.Details.(apperr.RedirectDetails)
	require.True(t, ok)
	return details
}

func TestOnlyStableOwnersMayOpen(t *testing.T) {
	e := newEnv(t, "horse_owner")
	_, err := e.svc.Open(context.Background(), e.user, i18n.English)
	require.True(t, apperr.Is(err, apperr.KindForbidden))
	assert.Equal(t, apperr.RedirectDetails{Redirect: ProfilePath, DelaySeconds: 3}, redirectOf(t, err))

	_, err = e.svc.Open(context.Background(), uuid.New(), i18n.English)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestOwnerWithAStableIsRedirected(t *testing.T) {
	e := newEnv(t, contentstore.UserTypeStableOwner)
	_, err := e.store.Create(context.Background(), contentstore.TypeStable, &e.user, map[string]any{"userRef": contentstore.Ref(e.user.String())})
	require.NoError(t, err)

	_, err = e.svc.Open(context.Background(), e.user, i18n.English)
	require.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, ProfilePath, redirectOf(t, err).Redirect)
}

func TestSubmitCreatesStableAndLinksUser(t *testing.T) {
	e := newEnv(t, contentstore.UserTypeStableOwner)
	id := e.open(t)
	e.fill(t, id)

	stableID, err := e.svc.Submit(context.Background(), id, e.user)
	require.NoError(t, err)
	e.bus.Wait()

	stable, err := e.store.Get(context.Background(), stableID)
	require.NoError(t, err)
	assert.Equal(t, contentstore.TypeStable, stable.Type)
	assert.Equal(t, e.user.String(), stable.RefID("userRef"))
	assert.Equal(t, false, stable.Body["statusAdminApproved"])
	for _, key := range []string{"horses", "fullTimeServices", "freelancerServices"} {
		assert.Equal(t, []any{}, stable.Body[key], key)
	}
	boarding := stable.Body["boardingDetails"].(map[string]any)
	assert.EqualValues(t, 12, boarding["boarding_capacity"])
	assert.Equal(t, []any{"arena"}, boarding["amenities"])
	assert.Len(t, stable.Body["images"], 2)

	user, err := e.store.Get(context.Background(), e.userDo.ID)
	require.NoError(t, err)
	assert.Equal(t, stableID.String(), user.RefID("stableRef"))

	e.seen.mu.Lock()
	require.Len(t, e.seen.events, 1)
	assert.Equal(t, KindRidingSchool, e.seen.events[0].(events.StableListingSubmitted).KindOfStable)
	e.seen.mu.Unlock()

	_, err = e.svc.Open(context.Background(), e.user, i18n.English)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestStableUploadFailureOrphansAssets(t *testing.T) {
	e := newEnv(t, contentstore.UserTypeStableOwner)
	id := e.open(t)
	e.fill(t, id)
	e.assets.FailAfter = 1
	creates := e.store.Calls["create"]

	_, err := e.svc.Submit(context.Background(), id, e.user)
	require.True(t, apperr.Is(err, apperr.KindUnavailable))
	e.bus.Wait()
	assert.Equal(t, creates, e.store.Calls["create"])

	e.seen.mu.Lock()
	require.Len(t, e.seen.events, 1)
	orphaned := e.seen.events[0].(events.AssetsOrphaned)
	e.seen.mu.Unlock()
	require.Len(t, orphaned.AssetIDs, 1)
	assert.True(t, e.assets.Has(orphaned.AssetIDs[0]))

	view, err := e.svc.Get(id, e.user)
	require.NoError(t, err)
	assert.Equal(t, 4, view.State.Step)
	assert.Equal(t, "Nile Stables", view.Form.NameEn)
}

func TestBoardingStep(t *testing.T) {
	f := NewFormData()
	errs := ValidateBoarding(f, en)
	assert.Equal(t, en.T(i18n.MsgRequired), errs["boarding_capacity"])
	assert.Equal(t, en.T(i18n.MsgPriceRequired), errs["boarding_price"])
	assert.Equal(t, en.T(i18n.MsgPriceUnitRequired), errs["boarding_price_unit"])

	f.BoardingDetails.BoardingCapacity = "0"
	f.BoardingDetails.BoardingPrice = "-5"
	f.BoardingDetails.BoardingPriceUnit = "per_year"
	f.FileLink = "brochure"
	errs = ValidateBoarding(f, en)
	assert.Equal(t, en.T(i18n.MsgMinValue, 1), errs["boarding_capacity"])
	assert.Equal(t, en.T(i18n.MsgInvalidPrice), errs["boarding_price"])
	assert.Equal(t, en.T(i18n.MsgInvalidOption), errs["boarding_price_unit"])
	assert.Equal(t, en.T(i18n.MsgInvalidURL), errs["fileLink"])
}

func TestBasicStepKind(t *testing.T) {
	f := NewFormData()
	f.NameAr, f.NameEn = "أ", "A"
	f.DescriptionAr, f.DescriptionEn = "و", "d"
	assert.Equal(t, en.T(i18n.MsgKindOfStableRequired), ValidateBasic(f, en)["kindOfStable"])

	f.KindOfStable = "castle"
	assert.Equal(t, en.T(i18n.MsgInvalidOption), ValidateBasic(f, en)["kindOfStable"])

	f.KindOfStable = KindBreedingFarm
	assert.Empty(t, ValidateBasic(f, en))
}

func TestDraftWithUnknownGovernorateKeepsOnlyCountry(t *testing.T) {
	e := newEnv(t, "stable_owner")
	data, err := json.Marshal(FormData{NameAr: "إسطبل", Country: e.country, Government: uuid.NewString(), City: e.city})
	require.NoError(t, err)
	require.NoError(t, e.drafts.Save(context.Background(), wizard.DraftKey(wizard.StableDraftPrefix, e.user), data, time.Hour))

	view, err := e.svc.Open(context.Background(), e.user, i18n.English)
	require.NoError(t, err)
	assert.Equal(t, "إسطبل", view.Form.NameAr)
	assert.Equal(t, e.country, view.Form.Country)
	assert.Empty(t, view.Form.Government)
	assert.Empty(t, view.Form.City)
	assert.Equal(t, e.country, view.Locations.Country.Selected)
}
