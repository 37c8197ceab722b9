package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "beast"
	lockTTL        = 30 * time.Second
)

// RedisStore keeps each document under its own key and a set of keys per
// collection for listing. Locks are held in Redis so several API replicas
// serialize writers for the same user.
type RedisStore struct {
	client *redis.Client
	locker *redislock.Client
}

// NewRedisStore creates a RedisStore on client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, locker: redislock.New(client)}
}

// NewRedisClient connects to addr and pings it.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func docKey(ref Ref) string {
	return fmt.Sprintf("%s:%s:%s:%s", redisKeyPrefix, ref.UserID, ref.Collection, ref.Key)
}

func indexKey(userID, collection string) string {
	return fmt.Sprintf("%s:%s:%s:_keys", redisKeyPrefix, userID, collection)
}

func (s *RedisStore) Get(ctx context.Context, ref Ref, dest any) (bool, error) {
	body, err := s.client.Get(ctx, docKey(ref)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get document %s/%s: %w", ref.Collection, ref.Key, err)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal document %s/%s: %w", ref.Collection, ref.Key, err)
	}
	return true, nil
}

func (s *RedisStore) Put(ctx context.Context, ref Ref, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s/%s: %w", ref.Collection, ref.Key, err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, docKey(ref), body, 0)
		pipe.SAdd(ctx, indexKey(ref.UserID, ref.Collection), ref.Key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save document %s/%s: %w", ref.Collection, ref.Key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, ref Ref) (bool, error) {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, docKey(ref))
		pipe.SRem(ctx, indexKey(ref.UserID, ref.Collection), ref.Key)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete document %s/%s: %w", ref.Collection, ref.Key, err)
	}
	return del.Val() > 0, nil
}

func (s *RedisStore) List(ctx context.Context, userID, collection string) ([]Document, error) {
	keys, err := s.client.SMembers(ctx, indexKey(userID, collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s documents: %w", collection, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = docKey(Ref{UserID: userID, Collection: collection, Key: k})
	}
	values, err := s.client.MGet(ctx, redisKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s documents: %w", collection, err)
	}

	docs := make([]Document, 0, len(keys))
	for i, v := range values {
		body, ok := v.(string)
		if !ok {
			// Index entry without a value; the document was removed concurrently.
			continue
		}
		docs = append(docs, Document{Key: keys[i], Body: []byte(body)})
	}
	return docs, nil
}

func (s *RedisStore) Lock(ctx context.Context, userID string) (func(), error) {
	lock, err := s.locker.Obtain(ctx, fmt.Sprintf("lock:%s:%s", redisKeyPrefix, userID), lockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 200),
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, fmt.Errorf("user %s is busy, lock not obtained: %w", userID, err)
		}
		return nil, fmt.Errorf("failed to obtain lock for user %s: %w", userID, err)
	}
	return func() {
		_ = lock.Release(context.Background())
	}, nil
}
