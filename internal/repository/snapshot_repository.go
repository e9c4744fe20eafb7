package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sarif-mia/agency-website-sub000/internal/config"
	"github.com/sarif-mia/agency-website-sub000/internal/model"
	"github.com/sarif-mia/agency-website-sub000/internal/redis"
	redisv9 "github.com/redis/go-redis/v9"
)

const keyPrefix = "content:"

var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository keeps the last live envelope of each content key so a
// page can still show real data while the backend is down.
type SnapshotRepository interface {
	Save(ctx context.Context, key string, env *model.Envelope)
	Load(ctx context.Context, key string) (*model.Envelope, error)
}

// redisCmdable is the part of the go-redis client the repository uses.
type redisCmdable interface {
	Get(ctx context.Context, key string) *redisv9.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd
}

type snapshotRepository struct {
	redisClient redisCmdable
	expiration  time.Duration
}

// NewSnapshotRepository creates a repository on the given client, or on the
// shared client when none is passed.
func NewSnapshotRepository(redisClient ...redisCmdable) SnapshotRepository {
	var rc redisCmdable
	if len(redisClient) > 0 && redisClient[0] != nil {
		rc = redisClient[0]
	} else {
		rc = redis.GetClient()
	}
	return &snapshotRepository{
		redisClient: rc,
		expiration:  config.GetSnapshotExpiration(),
	}
}

// Save stores env under key. Failures are ignored: snapshots are best effort.
func (r *snapshotRepository) Save(ctx context.Context, key string, env *model.Envelope) {
	if env == nil || env.Unreachable {
		return
	}
	if b, err := json.Marshal(env); err == nil {
		_ = r.redisClient.Set(ctx, keyPrefix+key, b, r.expiration).Err()
	}
}

// Load returns the snapshot stored under key.
func (r *snapshotRepository) Load(ctx context.Context, key string) (*model.Envelope, error) {
	val, err := r.redisClient.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redisv9.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}

	var env model.Envelope
	if err := json.Unmarshal([]byte(val), &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// noopRepository is used when snapshots are disabled.
type noopRepository struct{}

func NewNoopRepository() SnapshotRepository { return noopRepository{} }

func (noopRepository) Save(context.Context, string, *model.Envelope) {}

func (noopRepository) Load(context.Context, string) (*model.Envelope, error) {
	return nil, ErrSnapshotNotFound
}
