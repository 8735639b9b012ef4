// Integration tests for the result cache. Skipped when Valkey is not
// reachable; uses DB 15 to stay clear of development data.
package cache

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

func TestResultsRoundTrip(t *testing.T) {
	rc := NewResults(testClient(t), time.Minute)
	ctx := context.Background()

	var missed int
	ok, err := rc.Get(ctx, 7, "reminder-count", &missed)
	if err != nil {
		t.Fatalf("get miss: %v", err)
	}
	if ok {
		t.Fatal("expected a miss on a cold cache")
	}

	rc.Set(ctx, 7, "reminder-count", 3)

	var hit int
	ok, err = rc.Get(ctx, 7, "reminder-count", &hit)
	if err != nil {
		t.Fatalf("get hit: %v", err)
	}
	if !ok || hit != 3 {
		t.Fatalf("expected cached 3, got ok=%v value=%d", ok, hit)
	}

	// Another owner's key is a separate slot.
	ok, _ = rc.Get(ctx, 8, "reminder-count", &hit)
	if ok {
		t.Fatal("owner keys must not leak across owners")
	}
}

func TestInvalidateOwnerBustsAllKeys(t *testing.T) {
	rc := NewResults(testClient(t), time.Minute)
	ctx := context.Background()

	rc.Set(ctx, 9, "reminder-count", 5)
	rc.Set(ctx, 9, "frequent-categories", []string{"a", "b"})
	rc.Set(ctx, 10, "reminder-count", 1)

	rc.InvalidateOwner(ctx, 9)

	var n int
	if ok, _ := rc.Get(ctx, 9, "reminder-count", &n); ok {
		t.Fatal("reminder-count should be busted")
	}
	var names []string
	if ok, _ := rc.Get(ctx, 9, "frequent-categories", &names); ok {
		t.Fatal("frequent-categories should be busted")
	}

	// Other owners keep their entries.
	if ok, _ := rc.Get(ctx, 10, "reminder-count", &n); !ok || n != 1 {
		t.Fatalf("owner 10 entry should survive, got ok=%v n=%d", ok, n)
	}
}
