package infra_session_cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/oscarparty/internal/model"
)

const KeyPrefix = "oscar_access_level"

var ErrCorrupted = errors.New("corrupted session payload")

// Driver keeps sessions as JSON under <key>:<token>. Every Save renews the
// TTL.
type Driver struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func New(
	client *redis.Client,
	key string,
	ttl time.Duration,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (d *Driver) Save(ctx context.Context, s model.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return d.client.WithContext(ctx).Set(d.getFullKey(s.Token), raw, d.ttl).Err()
}

// Update rewrites an existing key only (SET XX), so a session deleted by
// logout or expiry is never brought back. It reports false in that case.
func (d *Driver) Update(ctx context.Context, s model.Session) (bool, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return false, err
	}

	return d.client.WithContext(ctx).SetXX(d.getFullKey(s.Token), raw, d.ttl).Result()
}

// Load returns nil without error when the token is unknown or expired.
func (d *Driver) Load(ctx context.Context, token model.SessionToken) (*model.Session, error) {
	val, err := d.client.WithContext(ctx).Get(d.getFullKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var s model.Session
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, errors.Join(ErrCorrupted, err)
	}

	return &s, nil
}

func (d *Driver) Delete(ctx context.Context, token model.SessionToken) error {
	return d.client.WithContext(ctx).Del(d.getFullKey(token)).Err()
}

func (d *Driver) getFullKey(key string) string {
	if d.key != "" {
		return d.key + ":" + key
	}
	return key
}
