package resilience

import "sync"

// SingleFlight collapses concurrent calls that share a key into one
// execution. The poll client keys flights by request URL so a burst of
// identical ranking fetches hits the provider once.
type SingleFlight struct {
	mu      sync.Mutex
	flights map[string]*flight
}

type flight struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key at a time. Callers arriving while a flight
// for the same key is in progress block until it lands and receive its
// result, with shared set to true.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (val any, err error, shared bool) {
	g.mu.Lock()
	if g.flights == nil {
		g.flights = make(map[string]*flight)
	}
	if f, ok := g.flights[key]; ok {
		g.mu.Unlock()
		<-f.done
		return f.val, f.err, true
	}

	f := &flight{done: make(chan struct{})}
	g.flights[key] = f
	g.mu.Unlock()

	f.val, f.err = fn()

	g.mu.Lock()
	delete(g.flights, key)
	g.mu.Unlock()
	close(f.done)

	return f.val, f.err, false
}
