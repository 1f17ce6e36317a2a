package modem

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"
)

// DefaultPollInterval is how often WaitFor checks the mapping.
const DefaultPollInterval = 100 * time.Millisecond

// Mapper maps model IDs to modem instance indexes. Instance indexes are
// 1-based positions in the model list the modem registered, so a model
// registered twice owns two indexes.
type Mapper struct {
	mu     sync.RWMutex
	models []uint16
	out    io.Writer
}

// NewMapper creates an empty mapper. Each mapping is reported on out when
// it is not nil.
func NewMapper(out io.Writer) *Mapper {
	return &Mapper{out: out}
}

// Map replaces the mapping with ids, in registration order.
func (m *Mapper) Map(ids []uint16) {
	m.mu.Lock()
	m.models = slices.Clone(ids)
	m.mu.Unlock()

	if m.out == nil {
		return
	}
	for i, id := range ids {
		fmt.Fprintf(m.out, "Mapped model_id to instance_index: %04x => %d\n", id, i+1)
	}
}

// Lookup returns every instance index registered for id, ascending.
func (m *Mapper) Lookup(id uint16) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var indexes []int
	for i, model := range m.models {
		if model == id {
			indexes = append(indexes, i+1)
		}
	}
	return indexes
}

// Contains reports whether id has at least one instance index.
func (m *Mapper) Contains(id uint16) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Contains(m.models, id)
}

// First returns the lowest instance index registered for id.
func (m *Mapper) First(id uint16) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := slices.Index(m.models, id); i >= 0 {
		return i + 1, true
	}
	return 0, false
}

// WaitFor polls until id is mapped and returns its first instance index.
// It gives up with ctx.Err() when ctx ends.
func (m *Mapper) WaitFor(ctx context.Context, id uint16, poll time.Duration) (int, error) {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		if index, ok := m.First(id); ok {
			return index, nil
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-ticker.C:
		}
	}
}
