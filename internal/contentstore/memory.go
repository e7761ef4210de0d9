package contentstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"horse_portal_backend/platform/apperr"
)

// MemoryStore is an in-process Store used by tests and local tooling.
// Bodies are round-tripped through JSON so callers observe the same value
// shapes the Postgres store returns.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[uuid.UUID]Document
	seq  int64

	// FailOn makes the named operation ("fetch", "create", "apply", ...) fail.
	FailOn map[string]error
	// Calls counts operations by name.
	Calls map[string]int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:   make(map[uuid.UUID]Document),
		FailOn: make(map[string]error),
		Calls:  make(map[string]int),
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) enter(op string) error {
	m.Calls[op]++
	return m.FailOn[op]
}

// Fetch returns matching documents.
func (m *MemoryStore) Fetch(_ context.Context, q Query) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("fetch"); err != nil {
		return nil, err
	}

	matched := lo.Filter(lo.Values(m.docs), func(d Document, _ int) bool { return matches(d, q) })
	sort.SliceStable(matched, func(i, j int) bool {
		less := matched[i].CreatedAt.Before(matched[j].CreatedAt)
		if q.Desc {
			return !less
		}
		return less
	})
	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return []Document{}, nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return lo.Map(matched, func(d Document, _ int) Document { return clone(d) }), nil
}

// Count returns the number of matching documents.
func (m *MemoryStore) Count(_ context.Context, q Query) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("count"); err != nil {
		return 0, err
	}
	return lo.CountBy(lo.Values(m.docs), func(d Document) bool { return matches(d, q) }), nil
}

// Get returns one document.
func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("get"); err != nil {
		return Document{}, err
	}
	doc, ok := m.docs[id]
	if !ok {
		return Document{}, apperr.NotFound(documentNotFoundMessage)
	}
	return clone(doc), nil
}

// Create stores a new document.
func (m *MemoryStore) Create(_ context.Context, docType string, ownerID *uuid.UUID, body map[string]any) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("create"); err != nil {
		return Document{}, err
	}
	normalized, err := roundTrip(body)
	if err != nil {
		return Document{}, err
	}
	m.seq++
	now := time.Unix(0, 0).Add(time.Duration(m.seq) * time.Second).UTC()
	doc := Document{ID: uuid.New(), Type: docType, OwnerID: ownerID, Body: normalized, CreatedAt: now, UpdatedAt: now}
	m.docs[doc.ID] = doc
	return clone(doc), nil
}

// Apply merges a patch.
func (m *MemoryStore) Apply(_ context.Context, patch PatchSpec) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("apply"); err != nil {
		return Document{}, err
	}
	doc, ok := m.docs[patch.ID]
	if !ok {
		return Document{}, apperr.NotFound(documentNotFoundMessage)
	}
	for _, f := range patch.Match {
		if value, ok := lookup(doc.Body, f.Path); !ok || !lo.Contains(f.Values, value) {
			return Document{}, apperr.Conflict(documentChangedMessage)
		}
	}
	set, err := roundTrip(patch.Set)
	if err != nil {
		return Document{}, err
	}
	for k, v := range set {
		doc.Body[k] = v
	}
	for _, k := range patch.Unset {
		delete(doc.Body, k)
	}
	m.seq++
	doc.UpdatedAt = time.Unix(0, 0).Add(time.Duration(m.seq) * time.Second).UTC()
	m.docs[doc.ID] = doc
	return clone(doc), nil
}

// Delete removes a document.
func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("delete"); err != nil {
		return err
	}
	if _, ok := m.docs[id]; !ok {
		return apperr.NotFound(documentNotFoundMessage)
	}
	delete(m.docs, id)
	return nil
}

func matches(d Document, q Query) bool {
	if d.Type != q.Type {
		return false
	}
	if q.OwnerID != nil && (d.OwnerID == nil || *d.OwnerID != *q.OwnerID) {
		return false
	}
	for _, f := range q.Filters {
		value, ok := lookup(d.Body, f.Path)
		if !ok || !lo.Contains(f.Values, value) {
			return false
		}
	}
	return true
}

func lookup(body map[string]any, path []string) (string, bool) {
	var current any = body
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		current, ok = obj[key]
		if !ok {
			return "", false
		}
	}
	switch v := current.(type) {
	case string:
		return v, true
	case nil:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}

func roundTrip(body map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return out, nil
}

func clone(d Document) Document {
	body, _ := roundTrip(d.Body)
	d.Body = body
	return d
}
