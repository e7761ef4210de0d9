package listings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horse_portal_backend/platform/apperr"
)

func apply(t *testing.T, f *FormData, in Intent) []string {
	t.Helper()
	released, err := ApplyIntent(f, in)
	require.NoError(t, err)
	return released
}

func TestLinkBounds(t *testing.T) {
	f := NewFormData()
	require.Len(t, f.Links, MinLinks)

	apply(t, &f, Intent{Type: IntentRemoveLink, Index: 0})
	apply(t, &f, Intent{Type: IntentRemoveLink, Index: 2})
	assert.Len(t, f.Links, MinLinks)

	for i := 0; i < 10; i++ {
		apply(t, &f, Intent{Type: IntentAddLink})
	}
	assert.Len(t, f.Links, MaxLinks)

	apply(t, &f, Intent{Type: IntentUpdateLink, Index: 4, Value: "https://example.com/4"})
	apply(t, &f, Intent{Type: IntentRemoveLink, Index: 3})
	assert.Len(t, f.Links, MaxLinks-1)
	assert.Equal(t, "https://example.com/4", f.Links[3].URL)

	_, err := ApplyIntent(&f, Intent{Type: IntentUpdateLink, Index: 9})
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
}

func TestDetailEditsStayInTheActiveVariant(t *testing.T) {
	f := NewFormData()
	apply(t, &f, Intent{Type: IntentSetServiceType, Value: string(TypeHorseTransport)})
	apply(t, &f, Intent{Type: IntentSetDetailField, Field: "maxLoad", Value: "4"})
	apply(t, &f, Intent{Type: IntentSetDetailField, Field: "air_conditioned", Value: "true"})
	apply(t, &f, Intent{Type: IntentToggleDetailValue, Field: "coverage_areas", Value: "local", Checked: true})

	transport := f.Details.(*TransportDetails)
	assert.Equal(t, "4", transport.MaxLoad)
	assert.True(t, transport.AirConditioned)

	// Re-selecting the same type keeps the values.
	apply(t, &f, Intent{Type: IntentSetServiceType, Value: string(TypeHorseTransport)})
	assert.Same(t, transport, f.Details)

	// A field of another variant is not reachable from this one.
	_, err := ApplyIntent(&f, Intent{Type: IntentToggleDetailValue, Field: "specialties", Value: "surgery", Checked: true})
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
	assert.Equal(t, []string{"local"}, transport.CoverageAreas)

	apply(t, &f, Intent{Type: IntentSetServiceType, Value: string(TypeVeterinary)})
	vet := f.Details.(*VeterinaryDetails)
	apply(t, &f, Intent{Type: IntentToggleDetailValue, Field: "specialties", Value: "surgery", Checked: true})
	assert.Equal(t, []string{"surgery"}, vet.Specialties)
	assert.Equal(t, "4", transport.MaxLoad)
	assert.Equal(t, []string{"local"}, transport.CoverageAreas)
}

func TestToggleIsIdempotent(t *testing.T) {
	d, _ := NewDetails(TypeHorseGrooming)
	require.NoError(t, ToggleDetailValue(d, "grooming_services", "bathing", true))
	require.NoError(t, ToggleDetailValue(d, "grooming_services", "bathing", true))
	assert.Equal(t, []string{"bathing"}, d.(*HorseGroomingDetails).GroomingServices)

	require.NoError(t, ToggleDetailValue(d, "grooming_services", "bathing", false))
	require.NoError(t, ToggleDetailValue(d, "grooming_services", "bathing", false))
	assert.Empty(t, d.(*HorseGroomingDetails).GroomingServices)
}

func TestListItemEdits(t *testing.T) {
	d, _ := NewDetails(TypeTripCoordinator)
	require.NoError(t, AppendDetailItem(d, "meals"))
	require.NoError(t, AppendDetailItem(d, "meals"))
	require.NoError(t, UpdateDetailItem(d, "meals", 1, "name_en", "Dinner"))
	require.NoError(t, RemoveDetailItem(d, "meals", 0))

	trip := d.(*TripCoordinatorDetails)
	require.Len(t, trip.Meals, 1)
	assert.Equal(t, "Dinner", trip.Meals[0].NameEn)
	assert.Empty(t, trip.Benefits)

	assert.True(t, apperr.Is(UpdateDetailItem(d, "meals", 0, "price", "10"), apperr.KindBadRequest))
	assert.True(t, apperr.Is(RemoveDetailItem(d, "meals", 5), apperr.KindBadRequest))
	assert.True(t, apperr.Is(SetDetailField(d, "meals", "x"), apperr.KindBadRequest))
}

func TestRemoveImageReleasesStagedBytes(t *testing.T) {
	f := NewFormData()
	f.Image = &MediaRef{StagingID: "s1"}
	f.Images = []MediaRef{{StagingID: "g1"}, {AssetID: "stored"}}

	assert.Equal(t, []string{"s1"}, apply(t, &f, Intent{Type: IntentRemoveImage}))
	assert.Nil(t, f.Image)
	assert.Empty(t, apply(t, &f, Intent{Type: IntentRemoveGalleryImage, Index: 1}))
	assert.Equal(t, []string{"g1"}, apply(t, &f, Intent{Type: IntentRemoveGalleryImage, Index: 0}))
	assert.Empty(t, f.Images)
}

func TestSetFieldRejectsLocationKeys(t *testing.T) {
	f := NewFormData()
	_, err := ApplyIntent(&f, Intent{Type: IntentSetField, Field: "country", Value: "eg"})
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))

	apply(t, &f, Intent{Type: IntentSetField, Field: "name_en", Value: "Farrier"})
	apply(t, &f, Intent{Type: IntentSetFlag, Field: "termsAccepted", Checked: true})
	assert.Equal(t, "Farrier", f.NameEn)
	assert.True(t, f.TermsAccepted)
}

func TestEveryWizardTypeHasFieldsAndAPayloadKey(t *testing.T) {
	keys := map[string]bool{}
	for _, st := range WizardTypes {
		d, ok := NewDetails(st)
		require.True(t, ok, st)
		assert.Equal(t, st, d.ServiceType())
		assert.NotEmpty(t, Fields(d), st)
		assert.NotEmpty(t, d.PayloadKey(), st)
		keys[d.PayloadKey()] = true
	}
	assert.Len(t, keys, len(WizardTypes))

	_, ok := NewDetails("unknown")
	assert.False(t, ok)
}

func TestFormJSONKeepsTheActiveVariant(t *testing.T) {
	f := completeForm()
	require.NoError(t, SetDetailField(f.Details, "license_number", "VET-42"))

	raw, err := f.MarshalJSON()
	require.NoError(t, err)

	var back FormData
	require.NoError(t, back.UnmarshalJSON(raw))
	vet, ok := back.Details.(*VeterinaryDetails)
	require.True(t, ok)
	assert.Equal(t, "VET-42", vet.LicenseNumber)
	assert.Equal(t, []string{"surgery"}, vet.Specialties)
	assert.Len(t, back.Links, MinLinks)
}
