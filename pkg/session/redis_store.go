package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys.
const DefaultRedisPrefix = "calcdesk:session:"

// RedisStore keeps sessions as JSON values whose TTL follows ExpiresAt, so
// Redis evicts them without a cleanup loop.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store on client. An empty prefix selects
// DefaultRedisPrefix.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if client == nil {
		panic("session: nil redis client")
	}
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidSession
	}
	return r.write(ctx, s, false)
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := r.client.Get(ctx, r.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.Join(ErrDecodeValue, err)
	}
	if s.IsExpired() {
		_ = r.Delete(ctx, token)
		return nil, ErrSessionExpired
	}
	return &s, nil
}

func (r *RedisStore) Update(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidSession
	}
	return r.write(ctx, s, true)
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteExpired is a no-op: keys carry their own TTL.
func (r *RedisStore) DeleteExpired(context.Context) error {
	return nil
}

func (r *RedisStore) write(ctx context.Context, s *Session, mustExist bool) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return errors.Join(ErrEncodeValue, err)
	}

	if !mustExist {
		if err := r.client.Set(ctx, r.key(s.Token), raw, ttl).Err(); err != nil {
			return errors.Join(ErrStoreUnavailable, err)
		}
		return nil
	}

	ok, err := r.client.SetXX(ctx, r.key(s.Token), raw, ttl).Result()
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}
