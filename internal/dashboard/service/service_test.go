package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horse_portal_backend/internal/auth"
	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/dashboard/repository"
	"horse_portal_backend/internal/dashboard/transport"
	"horse_portal_backend/internal/events"
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/logger"
)

var en = i18n.New(i18n.English)

type fakeAccounts struct {
	changed []auth.ChangePasswordRequest
	deleted int
	logouts int
	err     error
}

func (f *fakeAccounts) ChangePassword(_ context.Context, _ string, req auth.ChangePasswordRequest) error {
	f.changed = append(f.changed, req)
	return f.err
}

func (f *fakeAccounts) DeleteAccount(context.Context, string, auth.DeleteAccountRequest) error {
	f.deleted++
	return f.err
}

func (f *fakeAccounts) Logout(context.Context, string) error {
	f.logouts++
	return f.err
}

type sink struct {
	mu  sync.Mutex
	got []events.Event
}

func (s *sink) Handle(_ context.Context, e events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, e)
	return nil
}

func (s *sink) all() []events.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]events.Event(nil), s.got...)
}

type fixture struct {
	store    *contentstore.MemoryStore
	assets   *contentstore.MemoryAssetStore
	accounts *fakeAccounts
	bus      *events.InMemoryBus
	events   *sink
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    contentstore.NewMemoryStore(),
		assets:   contentstore.NewMemoryAssetStore(),
		accounts: &fakeAccounts{},
		bus:      events.NewInMemoryBus(logger.Nop()),
		events:   &sink{},
	}
	for _, name := range []string{
		events.OrderStatusChanged{}.EventName(),
		events.ReservationDecided{}.EventName(),
		events.AssetsOrphaned{}.EventName(),
	} {
		f.bus.Subscribe(name, f.events)
	}
	f.svc = New(repository.New(f.store), f.assets, f.accounts, f.bus, "EG", logger.Nop())
	return f
}

func (f *fixture) user(t *testing.T, userType string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := f.store.Create(context.Background(), contentstore.TypeUser, &id, map[string]any{"userType": userType, "name_en": "Rider"})
	require.NoError(t, err)
	return id
}

func (f *fixture) doc(t *testing.T, docType string, owner *uuid.UUID, body map[string]any) contentstore.Document {
	t.Helper()
	doc, err := f.store.Create(context.Background(), docType, owner, body)
	require.NoError(t, err)
	return doc
}

func (f *fixture) order(t *testing.T, buyer, provider uuid.UUID, status string, extra map[string]any) contentstore.Document {
	t.Helper()
	body := map[string]any{
		"buyerRef":    contentstore.Ref(buyer.String()),
		"providerRef": contentstore.Ref(provider.String()),
		"status":      status,
		"price":       100.5,
		"orderDate":   "2026-01-10",
	}
	for k, v := range extra {
		body[k] = v
	}
	return f.doc(t, contentstore.TypeOrder, &buyer, body)
}

func TestOrderTransitions(t *testing.T) {
	tests := []struct {
		side, from, to string
		want           bool
	}{
		{repository.SideProvider, repository.OrderPending, repository.OrderAccepted, true},
		{repository.SideProvider, repository.OrderPending, repository.OrderRejected, true},
		{repository.SideProvider, repository.OrderAccepted, repository.OrderCompleted, true},
		{repository.SideProvider, repository.OrderPending, repository.OrderCompleted, false},
		{repository.SideProvider, repository.OrderPending, repository.OrderCancelled, false},
		{repository.SideBuyer, repository.OrderPending, repository.OrderCancelled, true},
		{repository.SideBuyer, repository.OrderAccepted, repository.OrderCancelled, false},
		{repository.SideBuyer, repository.OrderPending, repository.OrderAccepted, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.side, tt.from, tt.to), "%s %s->%s", tt.side, tt.from, tt.to)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer, provider := uuid.New(), uuid.New()
	order := f.order(t, buyer, provider, repository.OrderPending, nil)

	_, err := f.svc.UpdateOrderStatus(ctx, en, buyer, order.ID, repository.OrderAccepted)
	require.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, en.T(i18n.MsgInvalidStatusChange), err.(*apperr.Error).Message)

	_, err = f.svc.UpdateOrderStatus(ctx, en, uuid.New(), order.ID, repository.OrderAccepted)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	got, err := f.svc.UpdateOrderStatus(ctx, en, provider, order.ID, repository.OrderAccepted)
	require.NoError(t, err)
	assert.Equal(t, repository.OrderAccepted, got.Status)

	_, err = f.svc.UpdateOrderStatus(ctx, en, buyer, order.ID, repository.OrderCancelled)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	f.bus.Wait()
	published := f.events.all()
	require.Len(t, published, 1)
	changed := published[0].(events.OrderStatusChanged)
	assert.Equal(t, repository.OrderPending, changed.From)
	assert.Equal(t, repository.OrderAccepted, changed.To)
	assert.Equal(t, provider, changed.ActorID)
}

// interleavedStore runs before ahead of every Apply, standing in for a
// request that lands between the status read and the write.
type interleavedStore struct {
	*contentstore.MemoryStore
	before func()
}

func (s *interleavedStore) Apply(ctx context.Context, patch contentstore.PatchSpec) (contentstore.Document, error) {
	if s.before != nil {
		s.before()
		s.before = nil
	}
	return s.MemoryStore.Apply(ctx, patch)
}

func TestUpdateOrderStatusLosesToConcurrentChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer, provider := uuid.New(), uuid.New()
	order := f.order(t, buyer, provider, repository.OrderPending, nil)

	store := &interleavedStore{MemoryStore: f.store, before: func() {
		_, err := contentstore.Patch(f.store, order.ID).Set(map[string]any{"status": repository.OrderCancelled}).Commit(ctx)
		require.NoError(t, err)
	}}
	svc := New(repository.New(store), f.assets, f.accounts, f.bus, "EG", logger.Nop())

	_, err := svc.UpdateOrderStatus(ctx, en, provider, order.ID, repository.OrderAccepted)
	require.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, en.T(i18n.MsgInvalidStatusChange), err.(*apperr.Error).Message)

	stored, err := f.store.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.OrderCancelled, stored.String("status"))
	f.bus.Wait()
	assert.Empty(t, f.events.all())
}

func TestOrdersByRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	me, other := uuid.New(), uuid.New()
	f.order(t, me, other, repository.OrderPending, nil)
	f.order(t, other, me, repository.OrderAccepted, nil)
	f.order(t, other, me, repository.OrderPending, nil)

	bought, err := f.svc.Orders(ctx, me, transport.ListOrdersRequest{})
	require.NoError(t, err)
	assert.Len(t, bought, 1)

	sold, err := f.svc.Orders(ctx, me, transport.ListOrdersRequest{Role: "provider"})
	require.NoError(t, err)
	assert.Len(t, sold, 2)

	pending, err := f.svc.Orders(ctx, me, transport.ListOrdersRequest{Role: "provider", Status: repository.OrderPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "100.50", pending[0].Price)
	assert.Equal(t, DefaultCurrency, pending[0].Currency)
}

func TestBillingTotalsPerCurrency(t *testing.T) {
	f := newFixture(t)
	me := uuid.New()
	f.order(t, me, uuid.New(), repository.OrderCompleted, map[string]any{"paid": true, "price": 0.1, "currency": "usd"})
	f.order(t, me, uuid.New(), repository.OrderCompleted, map[string]any{"paid": true, "price": 0.2, "currency": "USD"})
	f.order(t, me, uuid.New(), repository.OrderCompleted, map[string]any{"paid": true, "price": "1500"})
	f.order(t, me, uuid.New(), repository.OrderPending, map[string]any{"paid": false, "price": 99})

	bill, err := f.svc.Billing(context.Background(), me)
	require.NoError(t, err)
	assert.Len(t, bill.Orders, 3)
	assert.Equal(t, []transport.CurrencyTotal{
		{Currency: "EGP", Total: "1500.00", Orders: 1},
		{Currency: "USD", Total: "0.30", Orders: 2},
	}, bill.Totals)
}

func TestFavoritesAreIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	me := uuid.New()
	svc := f.doc(t, contentstore.TypeService, nil, map[string]any{"name_en": "Dr. Hoof", "serviceType": "veterinary"})

	first, created, err := f.svc.AddFavorite(ctx, me, svc.ID)
	require.NoError(t, err)
	assert.True(t, created)
	again, created, err := f.svc.AddFavorite(ctx, me, svc.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	_, _, err = f.svc.AddFavorite(ctx, me, uuid.New())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	list, err := f.svc.Favorites(ctx, me)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Dr. Hoof", list[0].NameEn)
	assert.Equal(t, "veterinary", list[0].ServiceType)

	require.NoError(t, f.svc.RemoveFavorite(ctx, me, svc.ID))
	require.NoError(t, f.svc.RemoveFavorite(ctx, me, svc.ID))
	list, err = f.svc.Favorites(ctx, me)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	me := f.user(t, "horse_owner")

	bad := "12"
	_, err := f.svc.UpdateProfile(ctx, en, me, transport.UpdateProfileRequest{Phone: &bad})
	require.True(t, apperr.Is(err, apperr.KindValidation))

	name, phone := "<b>Salma</b>", "01001234567"
	got, err := f.svc.UpdateProfile(ctx, en, me, transport.UpdateProfileRequest{NameEn: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Salma", got.NameEn)
	assert.Equal(t, "+201001234567", got.Phone)

	empty := ""
	got, err = f.svc.UpdateProfile(ctx, en, me, transport.UpdateProfileRequest{Phone: &empty})
	require.NoError(t, err)
	assert.Empty(t, got.Phone)
	assert.Equal(t, "Salma", got.NameEn)
}

func TestAccountMutationsGoToAuthAPI(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.ChangePassword(ctx, "tok", transport.ChangePasswordRequest{CurrentPassword: "old-secret", NewPassword: "new-secret"}))
	require.NoError(t, f.svc.DeleteAccount(ctx, uuid.New(), "tok", transport.DeleteAccountRequest{Password: "pw"}))
	require.NoError(t, f.svc.Logout(ctx, "tok"))
	assert.Equal(t, []auth.ChangePasswordRequest{{CurrentPassword: "old-secret", NewPassword: "new-secret"}}, f.accounts.changed)
	assert.Equal(t, 1, f.accounts.deleted)
	assert.Equal(t, 1, f.accounts.logouts)

	f.accounts.err = apperr.BadRequest("wrong password")
	assert.True(t, apperr.Is(f.svc.Logout(ctx, "tok"), apperr.KindBadRequest))
}

func TestReservationDecisions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, contentstore.UserTypeStableOwner)

	_, err := f.svc.Stable(ctx, en, owner)
	require.True(t, apperr.Is(err, apperr.KindNotFound))

	stable := f.doc(t, contentstore.TypeStable, &owner, map[string]any{"name_en": "Nile", "userRef": contentstore.Ref(owner.String())})
	otherStable := f.doc(t, contentstore.TypeStable, nil, map[string]any{"name_en": "Delta"})
	res := f.doc(t, contentstore.TypeReservation, nil, map[string]any{"stableRef": contentstore.Ref(stable.ID.String()), "status": "pending"})
	foreign := f.doc(t, contentstore.TypeReservation, nil, map[string]any{"stableRef": contentstore.Ref(otherStable.ID.String()), "status": "pending"})

	view, err := f.svc.Stable(ctx, en, owner)
	require.NoError(t, err)
	assert.Equal(t, "Nile", view.NameEn)
	assert.Len(t, view.Reservations, 1)

	_, err = f.svc.DecideReservation(ctx, en, owner, foreign.ID, "approve")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	got, err := f.svc.DecideReservation(ctx, en, owner, res.ID, "approve")
	require.NoError(t, err)
	assert.Equal(t, repository.ReservationApproved, got.Status)

	_, err = f.svc.DecideReservation(ctx, en, owner, res.ID, "reject")
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	f.bus.Wait()
	published := f.events.all()
	require.Len(t, published, 1)
	assert.Equal(t, stable.ID, published[0].(events.ReservationDecided).StableID)
}

func TestProductsAreSupplierOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rider := f.user(t, "horse_owner")

	_, err := f.svc.Products(ctx, en, rider)
	require.True(t, apperr.Is(err, apperr.KindForbidden))
	assert.Equal(t, en.T(i18n.MsgSupplierOnly), err.(*apperr.Error).Message)
}

func TestProductLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	supplier := f.user(t, contentstore.UserTypeSupplier)
	stock := 4

	_, err := f.svc.CreateProduct(ctx, en, supplier, transport.ProductRequest{NameAr: "سرج", NameEn: "Saddle", Price: "-1"})
	require.True(t, apperr.Is(err, apperr.KindValidation))

	p, err := f.svc.CreateProduct(ctx, en, supplier, transport.ProductRequest{NameAr: "سرج", NameEn: "Saddle", Price: "2500", Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, "2500.00", p.Price)
	assert.Equal(t, 4, *p.Stock)

	other := f.user(t, contentstore.UserTypeSupplier)
	_, err = f.svc.UpdateProduct(ctx, en, other, p.ID, transport.ProductRequest{NameAr: "x", NameEn: "x", Price: "1"})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	file := contentstore.AssetUpload{FileName: "saddle.png", ContentType: "image/png", Data: []byte("png")}
	withImage, err := f.svc.SetProductImage(ctx, en, supplier, p.ID, file)
	require.NoError(t, err)
	firstAsset := withImage.ImageAssetID
	require.NotEmpty(t, firstAsset)

	replaced, err := f.svc.SetProductImage(ctx, en, supplier, p.ID, file)
	require.NoError(t, err)
	assert.NotEqual(t, firstAsset, replaced.ImageAssetID)

	updated, err := f.svc.UpdateProduct(ctx, en, supplier, p.ID, transport.ProductRequest{NameAr: "سرج", NameEn: "English saddle", Price: "2600"})
	require.NoError(t, err)
	assert.Equal(t, "English saddle", updated.NameEn)
	assert.Nil(t, updated.Stock)
	assert.Equal(t, replaced.ImageAssetID, updated.ImageAssetID)

	require.NoError(t, f.svc.DeleteProduct(ctx, en, supplier, p.ID))
	list, err := f.svc.Products(ctx, en, supplier)
	require.NoError(t, err)
	assert.Empty(t, list)

	f.bus.Wait()
	var orphaned []string
	for _, e := range f.events.all() {
		orphaned = append(orphaned, e.(events.AssetsOrphaned).AssetIDs...)
	}
	assert.ElementsMatch(t, []string{firstAsset, replaced.ImageAssetID}, orphaned)
}

func TestEducationalItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	educator := f.user(t, contentstore.UserTypeEducational)

	_, err := f.svc.Items(ctx, en, f.user(t, contentstore.UserTypeSupplier), contentstore.TypeCourse)
	require.True(t, apperr.Is(err, apperr.KindForbidden))

	course, err := f.svc.CreateCourse(ctx, en, educator, transport.CourseRequest{TitleAr: "قفز", TitleEn: "Show jumping", Price: "800", DurationHours: "12", Level: "beginner"})
	require.NoError(t, err)
	assert.Equal(t, contentstore.TypeCourse, course.Type)
	assert.EqualValues(t, 12, course.Fields["duration_hours"])
	assert.NotContains(t, course.Fields, "userRef")

	_, err = f.svc.CreateCourse(ctx, en, educator, transport.CourseRequest{TitleAr: "ق", TitleEn: "J", Price: "1", DurationHours: "-3"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	book, err := f.svc.CreateBook(ctx, en, educator, transport.BookRequest{TitleAr: "خيل", TitleEn: "Horses", Author: "A. Writer", Price: "120"})
	require.NoError(t, err)

	_, err = f.svc.UpdateCourse(ctx, en, educator, book.ID, transport.CourseRequest{TitleAr: "x", TitleEn: "x", Price: "1"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	courses, err := f.svc.Items(ctx, en, educator, contentstore.TypeCourse)
	require.NoError(t, err)
	assert.Len(t, courses, 1)

	require.NoError(t, f.svc.DeleteItem(ctx, en, educator, book.ID, contentstore.TypeBook))
	books, err := f.svc.Items(ctx, en, educator, contentstore.TypeBook)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestOverviewCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	me := f.user(t, contentstore.UserTypeStableOwner)
	mine := map[string]any{"userRef": contentstore.Ref(me.String())}

	f.doc(t, contentstore.TypeService, &me, mine)
	f.doc(t, contentstore.TypeService, &me, mine)
	f.doc(t, contentstore.TypeFavorite, &me, mine)
	f.order(t, me, uuid.New(), repository.OrderPending, nil)
	stable := f.doc(t, contentstore.TypeStable, &me, mine)
	f.doc(t, contentstore.TypeReservation, nil, map[string]any{"stableRef": contentstore.Ref(stable.ID.String())})

	got, err := f.svc.Overview(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, transport.OverviewResponse{Services: 2, Orders: 1, Favorites: 1, Reservations: 1, HasStable: true}, got)
}
