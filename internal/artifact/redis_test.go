package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("FARECAST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FARECAST_REDIS_ADDR not set; skipping integration test")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	key := fmt.Sprintf("test-model-%d.json", time.Now().UnixNano())
	store := NewRedisStore(client, "farecast-test", key)
	ctx := context.Background()
	defer client.Del(ctx, store.objectKey())

	p, ds := fittedPipeline(t)
	if err := store.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}

	want, _ := p.Predict(ds)
	got, err := loaded.Predict(ds)
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: remote reload changed prediction", i)
		}
	}
}

func TestRedisStoreMissing(t *testing.T) {
	addr := os.Getenv("FARECAST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FARECAST_REDIS_ADDR not set; skipping integration test")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	store := NewRedisStore(client, "farecast-test", "never-written.json")
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
