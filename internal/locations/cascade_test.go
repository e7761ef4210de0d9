package locations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/i18n"
	"horse_portal_backend/platform/apperr"
	"horse_portal_backend/platform/logger"
)

type fakeSource struct {
	countries    []Option
	governorates map[string][]Option
	cities       map[string][]Option
	failGov      bool
	calls        int
}

func (f *fakeSource) Countries(context.Context) ([]Option, error) {
	f.calls++
	return f.countries, nil
}

func (f *fakeSource) Governorates(_ context.Context, countryID string) ([]Option, error) {
	f.calls++
	if f.failGov {
		return nil, errors.New("content store unreachable")
	}
	return f.governorates[countryID], nil
}

func (f *fakeSource) Cities(_ context.Context, governorateID string) ([]Option, error) {
	f.calls++
	return f.cities[governorateID], nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		countries: []Option{{ID: "eg", NameEn: "Egypt"}, {ID: "ae", NameEn: "UAE"}},
		governorates: map[string][]Option{
			"eg": {{ID: "giza"}, {ID: "cairo"}},
			"ae": {{ID: "dubai"}},
		},
		cities: map[string][]Option{
			"giza":  {{ID: "6oct"}, {ID: "dokki"}},
			"cairo": {{ID: "maadi"}},
			"dubai": {{ID: "jumeirah"}},
		},
	}
}

func newTestCascade(src Source) *Cascade {
	c := NewCascade(src, i18n.New(i18n.English), logger.Nop())
	c.Init(context.Background())
	return c
}

func TestCascadeInitialState(t *testing.T) {
	c := newTestCascade(newFakeSource())
	snap := c.Snapshot()
	assert.Equal(t, StateLoaded, snap.Country.State)
	assert.Len(t, snap.Country.Options, 2)
	assert.Equal(t, StateIdle, snap.Governorate.State)
	assert.False(t, c.Enabled(LevelGovernorate))
	assert.False(t, c.Enabled(LevelCity))
}

func TestSelectingCountryResetsGovernorateAndCity(t *testing.T) {
	ctx := context.Background()
	c := newTestCascade(newFakeSource())
	require.NoError(t, c.SelectCountry(ctx, "eg"))
	require.NoError(t, c.SelectGovernorate(ctx, "giza"))
	require.NoError(t, c.SelectCity("dokki"))
	assert.Equal(t, Selection{Country: "eg", Governorate: "giza", City: "dokki"}, c.Selection())

	require.NoError(t, c.SelectCountry(ctx, "ae"))
	snap := c.Snapshot()
	assert.Equal(t, Selection{Country: "ae"}, c.Selection())
	assert.Equal(t, []Option{{ID: "dubai"}}, snap.Governorate.Options)
	assert.Empty(t, snap.City.Options)
	assert.Equal(t, StateIdle, snap.City.State)
}

func TestSelectingGovernorateResetsOnlyCity(t *testing.T) {
	ctx := context.Background()
	c := newTestCascade(newFakeSource())
	require.NoError(t, c.SelectCountry(ctx, "eg"))
	require.NoError(t, c.SelectGovernorate(ctx, "giza"))
	require.NoError(t, c.SelectCity("6oct"))

	require.NoError(t, c.SelectGovernorate(ctx, "cairo"))
	assert.Equal(t, Selection{Country: "eg", Governorate: "cairo"}, c.Selection())
	assert.Len(t, c.Snapshot().Governorate.Options, 2)
	assert.Equal(t, []Option{{ID: "maadi"}}, c.Snapshot().City.Options)
}

func TestCascadeOrderIsEnforced(t *testing.T) {
	ctx := context.Background()
	c := newTestCascade(newFakeSource())

	err := c.SelectGovernorate(ctx, "giza")
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
	assert.Equal(t, "Please select a country first", err.Error())

	err = c.SelectCity("dokki")
	assert.Equal(t, "Please select a governorate first", err.Error())

	require.NoError(t, c.SelectCountry(ctx, "eg"))
	assert.Error(t, c.SelectGovernorate(ctx, "dubai"))
	assert.Error(t, c.SelectCountry(ctx, "fr"))
}

func TestFetchFailureDisablesDependentLevel(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()
	src.failGov = true
	c := newTestCascade(src)

	require.NoError(t, c.SelectCountry(ctx, "eg"))
	snap := c.Snapshot()
	assert.Equal(t, StateFailed, snap.Governorate.State)
	assert.Empty(t, snap.Governorate.Options)
	assert.False(t, c.Enabled(LevelGovernorate))

	src.failGov = false
	require.NoError(t, c.SelectCountry(ctx, "eg"))
	assert.True(t, c.Enabled(LevelGovernorate))
}

func TestEmptyListDisablesLevel(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()
	src.governorates["ae"] = nil
	c := newTestCascade(src)
	require.NoError(t, c.SelectCountry(ctx, "ae"))
	assert.Equal(t, StateLoaded, c.Snapshot().Governorate.State)
	assert.False(t, c.Enabled(LevelGovernorate))
}

func TestRestoreReplaysSelection(t *testing.T) {
	c := NewCascade(newFakeSource(), i18n.New(i18n.English), nil)
	c.Restore(context.Background(), Selection{Country: "eg", Governorate: "giza", City: "dokki"})
	assert.Equal(t, Selection{Country: "eg", Governorate: "giza", City: "dokki"}, c.Selection())

	c = NewCascade(newFakeSource(), i18n.New(i18n.English), nil)
	c.Restore(context.Background(), Selection{Country: "eg", Governorate: "gone", City: "dokki"})
	assert.Equal(t, Selection{Country: "eg"}, c.Selection())
}

func TestStoreSourceFiltersByParent(t *testing.T) {
	ctx := context.Background()
	store := contentstore.NewMemoryStore()
	eg, err := store.Create(ctx, contentstore.TypeCountry, nil, map[string]any{"name_en": "Egypt", "name_ar": "مصر"})
	require.NoError(t, err)
	giza, err := store.Create(ctx, contentstore.TypeGovernorate, nil, map[string]any{"name_en": "Giza", "country": contentstore.Ref(eg.ID.String())})
	require.NoError(t, err)
	_, err = store.Create(ctx, contentstore.TypeCity, nil, map[string]any{"name_en": "Dokki", "governorate": contentstore.Ref(giza.ID.String())})
	require.NoError(t, err)

	src := NewStoreSource(store)
	countries, err := src.Countries(ctx)
	require.NoError(t, err)
	require.Len(t, countries, 1)
	assert.Equal(t, "مصر", countries[0].NameAr)

	govs, err := src.Governorates(ctx, eg.ID.String())
	require.NoError(t, err)
	assert.Len(t, govs, 1)

	cities, err := src.Cities(ctx, giza.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Dokki", cities[0].NameEn)

	store.FailOn["fetch"] = errors.New("down")
	_, err = src.Countries(ctx)
	assert.Error(t, err)
}
