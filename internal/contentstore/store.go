// Package contentstore is the document port of the marketplace: typed JSON
// documents (service, stables, product, course, ...) plus binary assets.
// Wizards and dashboard tabs talk to it through the Store and AssetStore
// interfaces only.
package contentstore

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document types.
const (
	TypeCountry     = "country"
	TypeGovernorate = "governorate"
	TypeCity        = "city"
	TypeUser        = "user"
	TypeService     = "service"
	TypeStable      = "stables"
	TypeProduct     = "product"
	TypeCourse      = "course"
	TypeBook        = "book"
	TypeOrder       = "order"
	TypeFavorite    = "favorite"
	TypeReservation = "stableReservation"
)

// Document is one stored record. Body holds the document fields.
type Document struct {
	ID        uuid.UUID      `json:"_id"`
	Type      string         `json:"_type"`
	OwnerID   *uuid.UUID     `json:"ownerId,omitempty"`
	Body      map[string]any `json:"body"`
	CreatedAt time.Time      `json:"_createdAt"`
	UpdatedAt time.Time      `json:"_updatedAt"`
}

// String returns the body field at key when it is a string.
func (d Document) String(key string) string {
	s, _ := d.Body[key].(string)
	return s
}

// RefID returns the _ref of a reference field, or "".
func (d Document) RefID(key string) string {
	switch v := d.Body[key].(type) {
	case map[string]any:
		s, _ := v["_ref"].(string)
		return s
	case Reference:
		return v.Ref
	}
	return ""
}

// Reference points at another document or an asset.
type Reference struct {
	Type string `json:"_type"`
	Ref  string `json:"_ref"`
}

// Ref builds a reference to id.
func Ref(id string) Reference {
	return Reference{Type: "reference", Ref: id}
}

// Image wraps an asset reference in the image field shape.
func Image(assetID string) map[string]any {
	return map[string]any{"_type": "image", "asset": Ref(assetID)}
}

// ImageAssetID returns the asset id of an image field value, or "".
func ImageAssetID(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	asset, ok := m["asset"].(map[string]any)
	if !ok {
		return ""
	}
	id, _ := asset["_ref"].(string)
	return id
}

// Filter matches documents whose body value at Path equals one of Values.
type Filter struct {
	Path   []string
	Values []string
}

// Eq is a single-value filter on a dotted path ("country._ref").
func Eq(path string, value string) Filter {
	return Filter{Path: splitPath(path), Values: []string{value}}
}

// In is a multi-value filter on a dotted path.
func In(path string, values ...string) Filter {
	return Filter{Path: splitPath(path), Values: values}
}

// Query selects documents of one type.
type Query struct {
	Type    string
	OwnerID *uuid.UUID
	Filters []Filter
	OrderBy string // "created_at", "updated_at" or a top-level body field
	Desc    bool
	Limit   int
	Offset  int
}

// PatchSpec is a partial update: Set merges keys into the body, Unset removes them.
// When Match is not empty the patch only applies while every filter still
// holds, otherwise Apply returns a conflict.
type PatchSpec struct {
	ID    uuid.UUID
	Set   map[string]any
	Unset []string
	Match []Filter
}

// Store is the document store port.
type Store interface {
	Fetch(ctx context.Context, q Query) ([]Document, error)
	Count(ctx context.Context, q Query) (int, error)
	Get(ctx context.Context, id uuid.UUID) (Document, error)
	Create(ctx context.Context, docType string, ownerID *uuid.UUID, body map[string]any) (Document, error)
	Apply(ctx context.Context, patch PatchSpec) (Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PatchBuilder mirrors patch(id).set(...).commit().
type PatchBuilder struct {
	store Store
	spec  PatchSpec
}

// Patch starts a partial update of document id.
func Patch(store Store, id uuid.UUID) *PatchBuilder {
	return &PatchBuilder{store: store, spec: PatchSpec{ID: id, Set: map[string]any{}}}
}

// Set merges fields into the document body.
func (p *PatchBuilder) Set(fields map[string]any) *PatchBuilder {
	for k, v := range fields {
		p.spec.Set[k] = v
	}
	return p
}

// Unset removes top-level fields from the document body.
func (p *PatchBuilder) Unset(keys ...string) *PatchBuilder {
	p.spec.Unset = append(p.spec.Unset, keys...)
	return p
}

// Where makes the patch conditional on the current body.
func (p *PatchBuilder) Where(filters ...Filter) *PatchBuilder {
	p.spec.Match = append(p.spec.Match, filters...)
	return p
}

// Commit applies the patch.
func (p *PatchBuilder) Commit(ctx context.Context) (Document, error) {
	return p.store.Apply(ctx, p.spec)
}

func splitPath(path string) []string {
	return strings.Split(path, ".")
}
