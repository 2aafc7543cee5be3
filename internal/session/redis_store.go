package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"startupconnect/internal/domain/entity"
)

// RedisStore keeps the session in Redis so several gateway instances can
// share one login. Same contract as FileStore; reads degrade to "no session"
// on any Redis failure.
type RedisStore struct {
	client *redis.Client
	key    string

	subscribers
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    key,
	}
}

func (s *RedisStore) Current() (entity.Session, bool) {
	raw, err := s.client.Get(context.Background(), s.key).Bytes()
	if err != nil {
		return entity.Session{}, false
	}

	var f sessionFile
	if err := json.Unmarshal(raw, &f); err != nil || f.Token == "" {
		return entity.Session{}, false
	}

	return f.toSession(), true
}

func (s *RedisStore) Set(ctx context.Context, sess entity.Session) error {
	var f sessionFile
	f.Token = sess.Token
	f.User.ID = sess.User.ID
	f.User.Email = sess.User.Email
	f.User.Name = sess.User.Name
	f.User.Role = sess.User.Role.String()

	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	// No TTL: the session lives until logout, matching the file store.
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis.Set: %w", err)
	}

	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis.Del: %w", err)
	}

	s.notify()

	return nil
}

func (s *RedisStore) Token() string {
	sess, ok := s.Current()
	if !ok {
		return ""
	}

	return sess.Token
}

func (s *RedisStore) OnClear(fn func()) {
	s.add(fn)
}
