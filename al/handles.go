// SPDX-License-Identifier: EPL-2.0

package al

// ID is a buffer or source handle. 0 is the null handle.
//
// The low bits hold the slot index plus one, the high bits the slot
// generation, so a handle kept after its object was deleted never
// resolves to whatever later reuses the slot.
type ID uint32

const (
	indexBits     = 20
	indexMask     = 1<<indexBits - 1
	maxGeneration = 1<<(32-indexBits) - 1
)

func makeID(index int, gen uint32) ID {
	return ID(gen<<indexBits | uint32(index+1))
}

func (id ID) index() int { return int(uint32(id)&indexMask) - 1 }

func (id ID) generation() uint32 { return uint32(id) >> indexBits }

type slot[T any] struct {
	gen uint32
	val *T
}

// slotMap is an arena of objects addressed by generation-checked IDs.
// Iteration follows slot order, which keeps rendering deterministic.
type slotMap[T any] struct {
	slots []slot[T]
	free  []int
	live  int
	limit int
}

func newSlotMap[T any](limit int) slotMap[T] {
	return slotMap[T]{limit: min(limit, indexMask)}
}

// room reports whether n more objects fit.
func (m *slotMap[T]) room(n int) bool {
	if m.live+n > m.limit {
		return false
	}

	return len(m.free)+(indexMask-len(m.slots)) >= n
}

func (m *slotMap[T]) insert(v *T) (ID, bool) {
	if !m.room(1) {
		return 0, false
	}

	var idx int
	if n := len(m.free); n > 0 {
		idx = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		idx = len(m.slots)
		m.slots = append(m.slots, slot[T]{})
	}

	s := &m.slots[idx]
	s.val = v
	m.live++

	return makeID(idx, s.gen), true
}

func (m *slotMap[T]) get(id ID) (*T, bool) {
	idx := id.index()
	if idx < 0 || idx >= len(m.slots) {
		return nil, false
	}

	s := &m.slots[idx]
	if s.val == nil || s.gen != id.generation() {
		return nil, false
	}

	return s.val, true
}

func (m *slotMap[T]) remove(id ID) bool {
	if _, ok := m.get(id); !ok {
		return false
	}

	idx := id.index()
	s := &m.slots[idx]
	s.val = nil
	s.gen++
	m.live--

	// A slot that ran out of generations is retired for good.
	if s.gen <= maxGeneration {
		m.free = append(m.free, idx)
	}

	return true
}

func (m *slotMap[T]) len() int { return m.live }

func (m *slotMap[T]) each(fn func(ID, *T)) {
	for i := range m.slots {
		if v := m.slots[i].val; v != nil {
			fn(makeID(i, m.slots[i].gen), v)
		}
	}
}
