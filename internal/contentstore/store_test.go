package contentstore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horse_portal_backend/platform/apperr"
)

func TestBuildFetchQueryFiltersByTypeAndPath(t *testing.T) {
	owner := uuid.New()
	query, args, err := BuildFetchQuery(Query{
		Type:    TypeGovernorate,
		OwnerID: &owner,
		Filters: []Filter{Eq("country._ref", "c1"), In("status", "pending", "accepted")},
		Limit:   10,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "FROM documents WHERE doc_type = $1 AND owner_id = $2")
	assert.Contains(t, query, "body #>> $3::text[] = $4")
	assert.Contains(t, query, "body #>> $5::text[] = ANY($6::text[])")
	assert.Contains(t, query, "ORDER BY created_at ASC")
	assert.Contains(t, query, "LIMIT 10")
	assert.Equal(t, []any{TypeGovernorate, owner, []string{"country", "_ref"}, "c1", []string{"status"}, []string{"pending", "accepted"}}, args)
}

func TestBuildFetchQueryRejectsBadInput(t *testing.T) {
	_, _, err := BuildFetchQuery(Query{})
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))

	_, _, err = BuildFetchQuery(Query{Type: TypeService, OrderBy: "name; DROP TABLE documents"})
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
}

func TestBuildFetchQueryOrdersByBodyField(t *testing.T) {
	query, _, err := BuildFetchQuery(Query{Type: TypeOrder, OrderBy: "orderDate", Desc: true})
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY body->>'orderDate' DESC")
}

func TestBuildPatchQuery(t *testing.T) {
	id := uuid.New()

	query, args, err := BuildPatchQuery(PatchSpec{ID: id, Set: map[string]any{"status": "accepted"}})
	require.NoError(t, err)
	assert.Contains(t, query, "UPDATE documents SET body = body || $1::jsonb, updated_at = $2 WHERE id = $3")
	assert.Equal(t, []byte(`{"status":"accepted"}`), args[0])
	assert.Equal(t, id, args[2])

	query, _, err = BuildPatchQuery(PatchSpec{ID: id, Set: map[string]any{}, Unset: []string{"stableRef"}})
	require.NoError(t, err)
	assert.Contains(t, query, "body = (body || $1::jsonb) - $2::text[]")
}

func TestBuildPatchQueryWithMatch(t *testing.T) {
	id := uuid.New()
	query, args, err := BuildPatchQuery(PatchSpec{
		ID:    id,
		Set:   map[string]any{"status": "accepted"},
		Match: []Filter{Eq("status", "pending")},
	})
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE id = $3 AND body #>> $4::text[] = $5 RETURNING")
	assert.Equal(t, []string{"status"}, args[3])
	assert.Equal(t, "pending", args[4])
}

func TestMemoryStoreConditionalPatch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	order, err := store.Create(ctx, TypeOrder, nil, map[string]any{"status": "pending"})
	require.NoError(t, err)

	accepted, err := Patch(store, order.ID).Set(map[string]any{"status": "accepted"}).Where(Eq("status", "pending")).Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "accepted", accepted.String("status"))

	_, err = Patch(store, order.ID).Set(map[string]any{"status": "rejected"}).Where(Eq("status", "pending")).Commit(ctx)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	current, err := store.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "accepted", current.String("status"))

	_, err = Patch(store, uuid.New()).Set(map[string]any{"status": "accepted"}).Where(Eq("status", "pending")).Commit(ctx)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestMemoryStoreFiltersAndPatches(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	egypt, err := store.Create(ctx, TypeCountry, nil, map[string]any{"name_en": "Egypt"})
	require.NoError(t, err)
	_, err = store.Create(ctx, TypeGovernorate, nil, map[string]any{"name_en": "Giza", "country": Ref(egypt.ID.String())})
	require.NoError(t, err)
	_, err = store.Create(ctx, TypeGovernorate, nil, map[string]any{"name_en": "Dubai", "country": Ref(uuid.NewString())})
	require.NoError(t, err)

	govs, err := store.Fetch(ctx, Query{Type: TypeGovernorate, Filters: []Filter{Eq("country._ref", egypt.ID.String())}})
	require.NoError(t, err)
	require.Len(t, govs, 1)
	assert.Equal(t, "Giza", govs[0].String("name_en"))
	assert.Equal(t, egypt.ID.String(), govs[0].RefID("country"))

	patched, err := Patch(store, egypt.ID).Set(map[string]any{"code": "EG"}).Unset("name_en").Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EG", patched.String("code"))
	assert.NotContains(t, patched.Body, "name_en")

	_, err = store.Get(ctx, uuid.New())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestValidateAsset(t *testing.T) {
	assert.NoError(t, ValidateAsset("image/PNG; charset=binary", 10, 100))
	assert.Error(t, ValidateAsset("application/pdf", 10, 100))
	assert.Error(t, ValidateAsset("image/png", 0, 100))
	assert.Error(t, ValidateAsset("image/png", 101, 100))
}

func TestAssetKeyIsUniqueWithinFolder(t *testing.T) {
	a := AssetKey("services/u1", "horse.jpg")
	b := AssetKey("services/u1", "horse.jpg")
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^services/u1/horse_[0-9a-f]{8}\.jpg$`, a)

	assert.Regexp(t, `^stables/u2/my-arabian-mare_[0-9a-f]{8}\.png$`, AssetKey("stables/u2", "My Arabian Mare.PNG"))
	assert.Regexp(t, `^stables/u2/file_[0-9a-f]{8}$`, AssetKey("stables/u2", "../"))
}

func TestUploadAllReportsPartialUploads(t *testing.T) {
	ctx := context.Background()
	assets := NewMemoryAssetStore()
	files := []AssetUpload{
		{Folder: "services", FileName: "a.png", ContentType: "image/png", Data: []byte("a")},
		{Folder: "services", FileName: "b.png", ContentType: "image/png", Data: []byte("b")},
	}

	stored, ids, err := UploadAll(ctx, assets, files)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Len(t, ids, 2)
	assert.Equal(t, "image/png", stored[1].ContentType)

	assets.FailAfter = 3
	_, ids, err = UploadAll(ctx, assets, append(files, files...))
	require.Error(t, err)
	assert.Len(t, ids, 1)
	for _, id := range ids {
		assert.True(t, assets.Has(id))
	}
}

func TestValidateAllStopsAtFirstBadFile(t *testing.T) {
	assets := NewMemoryAssetStore()
	err := ValidateAll(assets, []AssetUpload{
		{ContentType: "image/png", Data: []byte("ok")},
		{ContentType: "text/plain", Data: []byte("no")},
	})
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
	assert.Equal(t, 0, assets.Len())
}
