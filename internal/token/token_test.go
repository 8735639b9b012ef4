// Integration tests for the token store. Skipped when Valkey is not
// reachable; uses DB 15 to stay clear of development data.
package token

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()

	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15, // test database, never the app's
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return client
}

func TestTokenLifecycle(t *testing.T) {
	store := NewStore(testClient(t))
	ctx := context.Background()

	tok, err := store.Create(ctx, &Data{
		UserID:      42,
		Email:       "token@test.local",
		DisplayName: "Token Tester",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(tok) != idLength*2 {
		t.Fatalf("expected %d hex chars, got %d", idLength*2, len(tok))
	}

	data, err := store.Get(ctx, tok)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if data == nil {
		t.Fatal("expected token data")
	}
	if data.UserID != 42 || data.Email != "token@test.local" {
		t.Fatalf("unexpected payload: %+v", data)
	}
	if data.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be stamped on create")
	}

	if err := store.Destroy(ctx, tok); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	data, err = store.Get(ctx, tok)
	if err != nil {
		t.Fatalf("get after destroy: %v", err)
	}
	if data != nil {
		t.Fatalf("destroyed token must not resolve, got %+v", data)
	}
}

func TestUnknownTokenIsNotAnError(t *testing.T) {
	store := NewStore(testClient(t))
	ctx := context.Background()

	data, err := store.Get(ctx, "deadbeef")
	if err != nil {
		t.Fatalf("get unknown: %v", err)
	}
	if data != nil {
		t.Fatalf("unknown token must resolve to nil, got %+v", data)
	}

	if data, err := store.Get(ctx, ""); err != nil || data != nil {
		t.Fatalf("empty token must be a silent miss, got %v %v", data, err)
	}

	if err := store.Destroy(ctx, "deadbeef"); err != nil {
		t.Fatalf("destroying unknown token must be a no-op, got %v", err)
	}
}

func TestTokensAreUnique(t *testing.T) {
	store := NewStore(testClient(t))
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		tok, err := store.Create(ctx, &Data{UserID: int64(i)})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[tok] {
			t.Fatalf("duplicate token generated: %s", tok)
		}
		seen[tok] = true
	}
}
