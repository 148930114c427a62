package routing

import (
	"sync/atomic"

	"polaris/components/internal/domain"
)

// Registry holds the current route table and lets configuration reloads
// replace it while resolutions are in flight.
type Registry struct {
	table atomic.Pointer[Table]
}

func NewRegistry(t *Table) *Registry {
	r := &Registry{}
	r.table.Store(t)
	return r
}

// Chain implements Provider against the table current at call time.
func (r *Registry) Chain(routeName string) ([]domain.Segment, bool) {
	t := r.table.Load()
	if t == nil {
		return nil, false
	}
	return t.Chain(routeName)
}

// Swap installs a new table and returns the previous one.
func (r *Registry) Swap(t *Table) *Table {
	return r.table.Swap(t)
}

func (r *Registry) Table() *Table {
	return r.table.Load()
}
