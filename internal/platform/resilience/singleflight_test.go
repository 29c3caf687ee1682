package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var executions int32
	var sharedCount int32

	const callers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, shared := g.Do("rankings?year=2025&week=10", func() (any, error) {
				atomic.AddInt32(&executions, 1)
				time.Sleep(20 * time.Millisecond)
				return "top25", nil
			})
			if err != nil {
				t.Errorf("flight failed: %v", err)
			}
			if val != "top25" {
				t.Errorf("every caller must see the shared result, got %v", val)
			}
			if shared {
				atomic.AddInt32(&sharedCount, 1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&executions); got != 1 {
		t.Fatalf("expected a single execution, got %d", got)
	}
	if got := atomic.LoadInt32(&sharedCount); got != callers-1 {
		t.Fatalf("expected %d shared results, got %d", callers-1, got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight

	a, err, _ := g.Do("rankings?year=2025&week=1", func() (any, error) { return 1, nil })
	if err != nil || a != 1 {
		t.Fatalf("first key: val=%v err=%v", a, err)
	}
	b, err, shared := g.Do("rankings?year=2025&week=2", func() (any, error) { return 2, nil })
	if err != nil || b != 2 || shared {
		t.Fatalf("second key must run its own flight: val=%v err=%v shared=%v", b, err, shared)
	}
}
