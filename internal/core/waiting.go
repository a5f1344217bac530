package core

import "math/rand/v2"

// WaitingPool is an unordered set of named clients without a partner.
// Removal swaps the last entry into the freed slot so every operation is O(1).
type WaitingPool struct {
	items []*Client
	index map[string]int
}

// NewWaitingPool returns an empty pool.
func NewWaitingPool() *WaitingPool {
	return &WaitingPool{index: make(map[string]int)}
}

// Add inserts a client. Returns false if it was already waiting.
func (p *WaitingPool) Add(c *Client) bool {
	if _, exists := p.index[c.ID]; exists {
		return false
	}
	p.index[c.ID] = len(p.items)
	p.items = append(p.items, c)
	return true
}

// Remove deletes the client with the given id. Returns true if removed.
func (p *WaitingPool) Remove(id string) bool {
	i, ok := p.index[id]
	if !ok {
		return false
	}
	last := len(p.items) - 1
	if i != last {
		moved := p.items[last]
		p.items[i] = moved
		p.index[moved.ID] = i
	}
	p.items[last] = nil
	p.items = p.items[:last]
	delete(p.index, id)
	return true
}

// Contains reports whether the client is waiting.
func (p *WaitingPool) Contains(id string) bool {
	_, ok := p.index[id]
	return ok
}

// Len returns the number of waiting clients.
func (p *WaitingPool) Len() int {
	return len(p.items)
}

// PickRandom chooses a waiting client uniformly at random, skipping
// excludeID. The chosen client stays in the pool. Returns nil when no
// eligible client is waiting.
func (p *WaitingPool) PickRandom(rng *rand.Rand, excludeID string) *Client {
	n := len(p.items)
	skip, hasSkip := p.index[excludeID]
	if hasSkip {
		n--
	}
	if n <= 0 {
		return nil
	}
	i := rng.IntN(n)
	if hasSkip && i >= skip {
		i++
	}
	return p.items[i]
}
