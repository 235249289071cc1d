package hierarchy

import (
	"context"
	"fmt"
	"time"
)

// memTree is an in-memory Tree for tests. Notes keep insertion order.
type memTree struct {
	notes   map[string]*Note
	order   []string
	nextID  int
	creates int
}

func newMemTree() *memTree {
	return &memTree{notes: make(map[string]*Note)}
}

func (m *memTree) FindOne(_ context.Context, id string) (*Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (m *memTree) FindByName(_ context.Context, parentID, name string) (*Note, error) {
	for _, id := range m.order {
		n := m.notes[id]
		if n.ParentID == parentID && n.Text == name {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memTree) Parent(ctx context.Context, n *Note) (*Note, error) {
	if n.ParentID == "" {
		return nil, nil
	}
	return m.FindOne(ctx, n.ParentID)
}

func (m *memTree) Children(_ context.Context, n *Note) ([]Note, error) {
	var out []Note
	for _, id := range m.order {
		if c := m.notes[id]; c.ParentID == n.ID {
			cp := *c
			cp.Tags = append([]string(nil), c.Tags...)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (m *memTree) Tags(_ context.Context, n *Note) ([]string, error) {
	stored, ok := m.notes[n.ID]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), stored.Tags...), nil
}

func (m *memTree) Create(_ context.Context, n *Note) (*Note, error) {
	m.nextID++
	m.creates++
	cp := *n
	cp.ID = fmt.Sprintf("n%d", m.nextID)
	cp.CreatedAt = time.Unix(int64(m.nextID), 0)
	m.notes[cp.ID] = &cp
	m.order = append(m.order, cp.ID)
	out := cp
	return &out, nil
}

func (m *memTree) Update(_ context.Context, n *Note) error {
	if _, ok := m.notes[n.ID]; !ok {
		return ErrNotFound
	}
	cp := *n
	m.notes[n.ID] = &cp
	return nil
}

func (m *memTree) Remove(_ context.Context, id string) error {
	if _, ok := m.notes[id]; !ok {
		return ErrNotFound
	}
	delete(m.notes, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// paths returns the stored paths below parentID in insertion order.
func (m *memTree) paths(parentID string) []string {
	var out []string
	for _, id := range m.order {
		if n := m.notes[id]; n.ParentID == parentID && n.Path != "" {
			out = append(out, n.Path)
		}
	}
	return out
}
