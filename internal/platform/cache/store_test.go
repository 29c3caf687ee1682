package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_LoadsPollOnce(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "top25 week 10", nil
	}

	const readers = 24
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(readers)

	var bad atomic.Int32
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "polls:2025:week:10", loader)
			if err != nil || v != "top25 week 10" {
				bad.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := bad.Load(); got != 0 {
		t.Fatalf("%d readers saw a wrong result", got)
	}
	if got := loads.Load(); got != 1 {
		t.Fatalf("loader ran %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ServesFromCache(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return "top25 week 11", nil
	}

	for i := 0; i < 3; i++ {
		if _, err := store.GetOrLoad(context.Background(), "polls:2025:week:11", loader); err != nil {
			t.Fatalf("GetOrLoad %d: %v", i, err)
		}
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("loader ran %d times, want 1", got)
	}
}

func TestStore_Get_DropsExpiredEntries(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Nanosecond)
	store.Set(context.Background(), "polls:2024:week:1", "stale")
	time.Sleep(2 * time.Millisecond)

	if v, ok := store.Get(context.Background(), "polls:2024:week:1"); ok {
		t.Fatalf("expired entry must not be served, got %v", v)
	}
}

func TestStore_DeletePrefix_EvictsSeason(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	store.Set(ctx, "polls:2025:week:1", "a")
	store.Set(ctx, "polls:2025:week:2", "b")
	store.Set(ctx, "polls:2026:week:1", "c")

	store.DeletePrefix(ctx, "polls:2025:")

	if _, ok := store.Get(ctx, "polls:2025:week:1"); ok {
		t.Fatal("2025 entries must be evicted")
	}
	if _, ok := store.Get(ctx, "polls:2025:week:2"); ok {
		t.Fatal("2025 entries must be evicted")
	}
	if v, ok := store.Get(ctx, "polls:2026:week:1"); !ok || v != "c" {
		t.Fatalf("other seasons must survive, got %v ok=%v", v, ok)
	}
}
