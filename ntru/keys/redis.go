package keys

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"ntruencrypt/ntru"
)

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore keeps envelopes at <prefix>:<name>:pub and <prefix>:<name>:key.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and checks the connection.
func NewRedisStore(cfg RedisConfig, prefix string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "keys: redis ping")
	}
	if prefix == "" {
		prefix = "ntru"
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) key(name string, kind Kind) string {
	if kind == KindPublic {
		return s.prefix + ":" + name + ":pub"
	}
	return s.prefix + ":" + name + ":key"
}

func (s *RedisStore) set(ctx context.Context, name string, kind Kind, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	return errors.Wrap(s.client.Set(ctx, s.key(name, kind), data, 0).Err(), "keys: redis set")
}

func (s *RedisStore) get(ctx context.Context, name string, kind Kind) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.key(name, kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.Wrapf(ErrNotFound, "%s key %q", kind, name)
		}
		return nil, errors.Wrap(err, "keys: redis get")
	}
	return data, nil
}

func (s *RedisStore) SavePublic(ctx context.Context, name string, k *ntru.PublicKey) error {
	data, err := sealPublic(k)
	if err != nil {
		return err
	}
	return s.set(ctx, name, KindPublic, data)
}

func (s *RedisStore) SavePrivate(ctx context.Context, name string, k *ntru.PrivateKey) error {
	data, err := sealPrivate(k)
	if err != nil {
		return err
	}
	return s.set(ctx, name, KindPrivate, data)
}

func (s *RedisStore) LoadPublic(ctx context.Context, name string) (*ntru.PublicKey, error) {
	data, err := s.get(ctx, name, KindPublic)
	if err != nil {
		return nil, err
	}
	return openPublic(data)
}

func (s *RedisStore) LoadPrivate(ctx context.Context, name string) (*ntru.PrivateKey, error) {
	data, err := s.get(ctx, name, KindPrivate)
	if err != nil {
		return nil, err
	}
	return openPrivate(data)
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	n, err := s.client.Del(ctx, s.key(name, KindPublic), s.key(name, KindPrivate)).Result()
	if err != nil {
		return errors.Wrap(err, "keys: redis del")
	}
	if n == 0 {
		return errors.Wrapf(ErrNotFound, "%q", name)
	}
	return nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
