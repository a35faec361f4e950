package resilience

import "sync"

// KeyedGuard is a non-blocking, non-reentrant mutex per key.
type KeyedGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// TryLock acquires key or reports false when it is already held. The returned
// release func is idempotent.
func (g *KeyedGuard) TryLock(key string) (func(), bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.held == nil {
		g.held = make(map[string]struct{})
	}
	if _, busy := g.held[key]; busy {
		return nil, false
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, true
}

func (g *KeyedGuard) Held(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.held[key]
	return busy
}
