package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/inkwell-press/inkwell/internal/inkwell/repository/sessionrepo"
	"github.com/inkwell-press/inkwell/internal/pkg/config"
	"github.com/inkwell-press/inkwell/internal/pkg/redistools"
	"github.com/redis/go-redis/v9"
)

const connectMaxWait = time.Second * 5

type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(ctx context.Context, cfg config.RedisSessions, ttl time.Duration) (SessionStore, error) {
	rdb := redis.NewClient(&redis.Options{ //nolint:exhaustruct
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// The session store is in the serving path, so give up on redis
	// sooner than the default would.
	if err := redistools.Connect(ctx, rdb, connectMaxWait); err != nil {
		return SessionStore{}, fmt.Errorf("connect error: %w", err)
	}

	return SessionStore{
		rdb: rdb,
		ttl: ttl,
	}, nil
}

// NewWithClient wires an existing client, which lets tests run against
// miniredis.
func NewWithClient(rdb *redis.Client, ttl time.Duration) SessionStore {
	return SessionStore{
		rdb: rdb,
		ttl: ttl,
	}
}

func (ss SessionStore) Save(ctx context.Context, s sessionrepo.Session) error {
	sessionJSON, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	if _, err := ss.rdb.Set(ctx, "session:"+s.ID, sessionJSON, ss.ttl).Result(); err != nil {
		return fmt.Errorf("set error: %w", err)
	}

	return nil
}

func (ss SessionStore) Get(ctx context.Context, id string) (sessionrepo.Session, error) {
	sessionJSON, err := ss.rdb.Get(ctx, "session:"+id).Result()
	if errors.Is(err, redis.Nil) {
		return sessionrepo.Session{}, sessionrepo.ErrNotFound
	} else if err != nil {
		return sessionrepo.Session{}, fmt.Errorf("get error: %w", err)
	}

	var s sessionrepo.Session

	if err := json.Unmarshal([]byte(sessionJSON), &s); err != nil {
		return sessionrepo.Session{}, fmt.Errorf("unmarshal error: %w", err)
	}

	return s, nil
}

func (ss SessionStore) Delete(ctx context.Context, id string) error {
	deleted, err := ss.rdb.Del(ctx, "session:"+id).Result()
	if err != nil {
		return fmt.Errorf("del error: %w", err)
	}

	if deleted == 0 {
		return sessionrepo.ErrNotFound
	}

	return nil
}
