package world

import (
	"sort"
	"sync"

	"github.com/cwgo/server/internal/protocol"
)

// IdPool hands out creature ids. Id 0 belongs to the server itself and
// is never issued. Freed ids are reused lowest-first so long-running
// servers do not creep upward.
type IdPool struct {
	mu   sync.Mutex
	next protocol.CreatureID
	free []protocol.CreatureID
}

func NewIdPool() *IdPool {
	return &IdPool{next: 1}
}

func (p *IdPool) Claim() protocol.CreatureID {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) > 0 {
		id := p.free[0]
		p.free = p.free[1:]
		return id
	}
	id := p.next
	p.next++
	return id
}

func (p *IdPool) Free(id protocol.CreatureID) {
	if id == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	i := sort.Search(len(p.free), func(i int) bool { return p.free[i] >= id })
	if i < len(p.free) && p.free[i] == id {
		return
	}
	p.free = append(p.free, 0)
	copy(p.free[i+1:], p.free[i:])
	p.free[i] = id
}
