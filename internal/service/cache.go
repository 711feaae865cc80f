package service

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

const cacheStripes = 256

// cacheGuard keeps a write generation per stripe of order ids. A read takes the
// generation before it goes to the database and may only fill the cache if no
// write to the same stripe committed in between.
type cacheGuard struct {
	mu   sync.Mutex
	gens [cacheStripes]uint64
}

func stripe(id string) uint64 {
	return xxhash.Sum64String(id) % cacheStripes
}

func (g *cacheGuard) generation(id string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gens[stripe(id)]
}

// fill stores value under id unless a write happened since gen was taken.
func (g *cacheGuard) fill(c Cache, id string, gen uint64, value []byte) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.gens[stripe(id)] != gen {
		return false
	}
	c.Set(id, value)
	return true
}

func (g *cacheGuard) invalidate(c Cache, id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.gens[stripe(id)]++
	c.Delete(id)
}
