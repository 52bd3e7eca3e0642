// README: Artifact store backed by a remote Redis object store.
package artifact

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"farecast/internal/model"
)

// RedisStore addresses the artifact by bucket and key on a remote Redis
// instance, mirroring an object store's put/get contract.
type RedisStore struct {
	client *redis.Client
	bucket string
	key    string
}

func NewRedisStore(client *redis.Client, bucket, key string) *RedisStore {
	return &RedisStore{client: client, bucket: bucket, key: key}
}

func (s *RedisStore) objectKey() string {
	return fmt.Sprintf("artifact:%s:%s", s.bucket, s.key)
}

func (s *RedisStore) Save(ctx context.Context, p *model.Pipeline) error {
	blob, err := encode(p)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.objectKey(), blob, 0).Err(); err != nil {
		return fmt.Errorf("put %s: %w", s.objectKey(), err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (*model.Pipeline, error) {
	blob, err := s.client.Get(ctx, s.objectKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.objectKey())
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.objectKey(), err)
	}
	return decode(blob)
}
