package wizard

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"horse_portal_backend/platform/config"
)

// Draft key prefixes per wizard.
const (
	ServiceDraftPrefix = "serviceFormDraft"
	StableDraftPrefix  = "stableFormDraft"
)

// DraftKey scopes a draft to one user.
func DraftKey(prefix string, userID uuid.UUID) string {
	return prefix + ":" + userID.String()
}

// DraftStore persists recovery snapshots of in-progress forms.
type DraftStore interface {
	Save(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
}

// LoadDraft decodes the draft at key into a form. A corrupt draft is
// reported as absent so the wizard opens empty.
func LoadDraft[F any](ctx context.Context, store DraftStore, key string) (F, bool, error) {
	var form F
	data, ok, err := store.Load(ctx, key)
	if err != nil || !ok {
		return form, false, err
	}
	if err := json.Unmarshal(data, &form); err != nil {
		return form, false, nil
	}
	return form, true, nil
}

// RedisDraftStore keeps drafts in Redis with an expiry.
type RedisDraftStore struct {
	client *redis.Client
}

// NewRedisDraftStore wraps an existing client.
func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{client: client}
}

// NewRedisClient builds a go-redis client from the configured URL.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.GetRedisURL() == "" {
		return nil, fmt.Errorf("redis url not configured")
	}
	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.GetRedisTLSInsecure() {
		if opt.TLSConfig == nil {
			opt.TLSConfig = &tls.Config{}
		}
		opt.TLSConfig.InsecureSkipVerify = true
	}
	return redis.NewClient(opt), nil
}

// Save overwrites the draft at key.
func (s *RedisDraftStore) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("save draft %s: %w", key, err)
	}
	return nil
}

// Load returns the draft at key, if any.
func (s *RedisDraftStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load draft %s: %w", key, err)
	}
	return data, true, nil
}

// Delete removes the draft at key.
func (s *RedisDraftStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete draft %s: %w", key, err)
	}
	return nil
}

// MemoryDraftStore keeps drafts in process memory. TTL is ignored.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string][]byte
	saves  int
}

// NewMemoryDraftStore creates an empty store.
func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string][]byte)}
}

// Save overwrites the draft at key.
func (s *MemoryDraftStore) Save(_ context.Context, key string, data []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[key] = append([]byte(nil), data...)
	s.saves++
	return nil
}

// Load returns the draft at key, if any.
func (s *MemoryDraftStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.drafts[key]
	return data, ok, nil
}

// Delete removes the draft at key.
func (s *MemoryDraftStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, key)
	return nil
}

// Saves returns how many times Save was called.
func (s *MemoryDraftStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

var (
	_ DraftStore = (*RedisDraftStore)(nil)
	_ DraftStore = (*MemoryDraftStore)(nil)
)
