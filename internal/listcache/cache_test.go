package listcache

import (
	"context"
	"errors"
	"testing"

	"github.com/gitxyzlabs/levoyageur/internal/logging"
)

func TestGetFillsOnceUntilInvalidated(t *testing.T) {
	cache := New(logging.NewNop())
	calls := 0
	fill := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	for i := 0; i < 3; i++ {
		values, err := Get(context.Background(), cache, LocationsKey(), fill)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if len(values) != 2 {
			t.Fatalf("values = %v", values)
		}
	}
	if calls != 1 {
		t.Fatalf("fill ran %d times", calls)
	}

	cache.Invalidate(LocationsKey())
	if _, err := Get(context.Background(), cache, LocationsKey(), fill); err != nil {
		t.Fatalf("Get after invalidate: %v", err)
	}
	if calls != 2 {
		t.Fatalf("fill should rerun after invalidation, ran %d times", calls)
	}
}

func TestGetDoesNotCacheErrors(t *testing.T) {
	cache := New(logging.NewNop())
	calls := 0
	fail := errors.New("query failed")
	fill := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, fail
		}
		return 7, nil
	}

	if _, err := Get(context.Background(), cache, AwardRecordsKey(), fill); !errors.Is(err, fail) {
		t.Fatalf("err = %v", err)
	}
	value, err := Get(context.Background(), cache, AwardRecordsKey(), fill)
	if err != nil || value != 7 {
		t.Fatalf("value = %d err = %v", value, err)
	}
	if cache.Len() != 1 {
		t.Fatalf("len = %d", cache.Len())
	}
}

func TestPerUserKeysAreIndependent(t *testing.T) {
	cache := New(logging.NewNop())
	fillFor := func(ids []string) func(context.Context) ([]string, error) {
		return func(context.Context) ([]string, error) { return ids, nil }
	}

	alice, _ := Get(context.Background(), cache, FavoritesKey("alice"), fillFor([]string{"u1"}))
	bob, _ := Get(context.Background(), cache, FavoritesKey("bob"), fillFor([]string{"u2", "u3"}))
	if len(alice) != 1 || len(bob) != 2 {
		t.Fatalf("alice = %v bob = %v", alice, bob)
	}

	cache.Invalidate(FavoritesKey("alice"))
	if cache.Len() != 1 {
		t.Fatalf("only alice's entry should drop, len = %d", cache.Len())
	}
}

func TestNilCachePassesThrough(t *testing.T) {
	var cache *Cache
	value, err := Get(context.Background(), cache, LocationsKey(), func(context.Context) (string, error) {
		return "direct", nil
	})
	if err != nil || value != "direct" {
		t.Fatalf("value = %q err = %v", value, err)
	}
	cache.Invalidate(LocationsKey())
	cache.InvalidateAll()
	if cache.Len() != 0 {
		t.Fatal("nil cache has no entries")
	}
}
