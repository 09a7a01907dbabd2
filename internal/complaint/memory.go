package complaint

import (
	"context"
	"sort"
	"sync"

	"complainthub.org/internal/ids"
)

// Memory is an in-memory Store used by tests and demo mode. Listings and
// aggregation buckets preserve insertion/discovery order.
type Memory struct {
	mu    sync.RWMutex
	items map[string]*Complaint
	order []string
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory complaint store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]*Complaint)}
}

func (m *Memory) Create(ctx context.Context, c *Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c.ID == "" {
		c.ID = ids.New()
	}
	cp := *c
	m.items[c.ID] = &cp
	m.order = append(m.order, c.ID)
	return nil
}

func (m *Memory) Find(ctx context.Context, id string) (*Complaint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *Memory) List(ctx context.Context) ([]*Complaint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Complaint, 0, len(m.order))
	for _, id := range m.order {
		if c, ok := m.items[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *Memory) Update(ctx context.Context, c *Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[c.ID]; !ok {
		return ErrNotFound
	}
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	for i, got := range m.order {
		if got == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) CountTotal(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items), nil
}

func (m *Memory) CountByStatus(ctx context.Context) ([]Bucket, error) {
	return m.countBy(func(c *Complaint) string { return c.Status }), nil
}

func (m *Memory) CountByDepartment(ctx context.Context) ([]Bucket, error) {
	return m.countBy(func(c *Complaint) string { return c.Department }), nil
}

func (m *Memory) CountByPriority(ctx context.Context) ([]Bucket, error) {
	return m.countBy(func(c *Complaint) string { return c.Priority }), nil
}

func (m *Memory) TopOwners(ctx context.Context, limit int) ([]OwnerCount, error) {
	m.mu.RLock()
	counts := make(map[string]int)
	for _, c := range m.items {
		counts[c.OwnerID]++
	}
	m.mu.RUnlock()

	out := make([]OwnerCount, 0, len(counts))
	for owner, n := range counts {
		out = append(out, OwnerCount{OwnerID: owner, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].OwnerID < out[j].OwnerID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) countBy(key func(*Complaint) string) []Bucket {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int)
	var discovered []string
	for _, id := range m.order {
		c, ok := m.items[id]
		if !ok {
			continue
		}
		k := key(c)
		if _, seen := counts[k]; !seen {
			discovered = append(discovered, k)
		}
		counts[k]++
	}
	buckets := make([]Bucket, 0, len(discovered))
	for _, k := range discovered {
		buckets = append(buckets, Bucket{Key: k, Count: counts[k]})
	}
	return buckets
}
