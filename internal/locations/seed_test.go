package locations

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horse_portal_backend/internal/contentstore"
)

const seedYAML = `
countries:
  - name_en: Egypt
    name_ar: مصر
    governorates:
      - name_en: Giza
        name_ar: الجيزة
        cities:
          - name_en: Dokki
            name_ar: الدقي
          - name_en: Haram
            name_ar: الهرم
      - name_en: Cairo
        name_ar: القاهرة
`

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := contentstore.NewMemoryStore()
	file, err := ParseSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)

	res, err := Seed(ctx, store, file)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Countries: 1, Governorates: 2, Cities: 2}, res)

	res, err = Seed(ctx, store, file)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, res)

	source := NewStoreSource(store)
	countries, err := source.Countries(ctx)
	require.NoError(t, err)
	require.Len(t, countries, 1)
	govs, err := source.Governorates(ctx, countries[0].ID)
	require.NoError(t, err)
	assert.Len(t, govs, 2)
}

func TestParseSeedRejectsBadInput(t *testing.T) {
	_, err := ParseSeed(strings.NewReader("countries:\n  - name_ar: x\n"))
	assert.Error(t, err)

	_, err = ParseSeed(strings.NewReader("regions: []\n"))
	assert.Error(t, err)
}
