package core

import "time"

// Pair is an active chat link between two distinct clients.
type Pair struct {
	ID        string
	First     *Client
	Second    *Client
	StartedAt time.Time
}

// Other returns the member that is not id, or nil if id is not a member.
func (p *Pair) Other(id string) *Client {
	switch id {
	case p.First.ID:
		return p.Second
	case p.Second.ID:
		return p.First
	default:
		return nil
	}
}

// PairTable indexes active pairs by member id.
type PairTable struct {
	byClient map[string]*Pair
	count    int
}

// NewPairTable returns an empty table.
func NewPairTable() *PairTable {
	return &PairTable{byClient: make(map[string]*Pair)}
}

// Add registers a pair. Returns false if the members are the same client or
// either member is already paired.
func (t *PairTable) Add(p *Pair) bool {
	if p.First.ID == p.Second.ID {
		return false
	}
	if _, busy := t.byClient[p.First.ID]; busy {
		return false
	}
	if _, busy := t.byClient[p.Second.ID]; busy {
		return false
	}
	t.byClient[p.First.ID] = p
	t.byClient[p.Second.ID] = p
	t.count++
	return true
}

// Find returns the pair containing the client, or nil.
func (t *PairTable) Find(id string) *Pair {
	return t.byClient[id]
}

// Remove drops the pair. Returns true if it was present.
func (t *PairTable) Remove(p *Pair) bool {
	if t.byClient[p.First.ID] != p {
		return false
	}
	delete(t.byClient, p.First.ID)
	delete(t.byClient, p.Second.ID)
	t.count--
	return true
}

// Len returns the number of active pairs.
func (t *PairTable) Len() int {
	return t.count
}

// Each calls fn once per active pair.
func (t *PairTable) Each(fn func(*Pair)) {
	for id, p := range t.byClient {
		if p.First.ID == id {
			fn(p)
		}
	}
}
