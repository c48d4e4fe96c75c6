package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// expiredGrace is how long an expired room stays readable (as ErrExpired)
// before its key falls out of Redis entirely. It mirrors the window between
// expiry and the next sweep of the in-memory store, so clients get the same
// distinct "expired" answer from either backing.
const expiredGrace = SweepInterval

// RedisStore is a RoomStore backed by Redis, for deployments that run more
// than one server process against the same room space. Rooms are JSON values
// with a TTL; results live in a hash sharing the room's lifetime.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store on an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func roomKey(id string) string    { return fmt.Sprintf("room:%s", id) }
func resultsKey(id string) string { return fmt.Sprintf("results:%s", id) }

func (s *RedisStore) Put(ctx context.Context, room *Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	deadline := room.ExpiresAt.Add(expiredGrace)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, roomKey(room.ID), data, time.Until(deadline))
	pipe.HSetNX(ctx, resultsKey(room.ID), "_created", "1")
	pipe.ExpireAt(ctx, resultsKey(room.ID), deadline)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Room, error) {
	data, err := s.client.Get(ctx, roomKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var room Room
	if err := json.Unmarshal([]byte(data), &room); err != nil {
		return nil, err
	}
	if room.Expired(time.Now()) {
		return nil, ErrExpired
	}
	return &room, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, roomKey(id), resultsKey(id)).Err()
}

func (s *RedisStore) SetResult(ctx context.Context, roomID, email string, questionID int, solved bool) error {
	exists, err := s.client.Exists(ctx, roomKey(roomID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}
	field := fmt.Sprintf("%s|%d", email, questionID)
	return s.client.HSet(ctx, resultsKey(roomID), field, solved).Err()
}

// SweepExpired removes rooms whose grace window has not elapsed yet but whose
// expiry has passed. TTLs already bound the lifetime of every key, so this
// keeps the expired-room window short rather than being load-bearing.
func (s *RedisStore) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	removed := 0
	iter := s.client.Scan(ctx, 0, roomKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := s.client.Get(ctx, key).Result()
		if err != nil {
			continue
		}
		var room Room
		if err := json.Unmarshal([]byte(data), &room); err != nil {
			continue
		}
		if room.Expired(now) {
			if err := s.Delete(ctx, room.ID); err == nil {
				removed++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}
	return removed, nil
}
