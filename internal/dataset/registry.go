package dataset

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/acs-demographics/internal/acs"
)

// Registry maps dataset names to their implementations.
type Registry struct {
	datasets map[string]DataSet
	order    []string // insertion order for deterministic iteration
}

// NewRegistry creates a registry populated with every dataset backed by client.
func NewRegistry(client *acs.Client) (*Registry, error) {
	r := &Registry{
		datasets: make(map[string]DataSet),
	}

	pop, err := NewPopulationData(client)
	if err != nil {
		return nil, err
	}
	r.Register(pop)

	return r, nil
}

// Register adds a dataset to the registry.
func (r *Registry) Register(d DataSet) {
	name := d.Name()
	if _, exists := r.datasets[name]; !exists {
		r.order = append(r.order, name)
	}
	r.datasets[name] = d
}

// Get returns a dataset by name.
func (r *Registry) Get(name string) (DataSet, error) {
	d, ok := r.datasets[name]
	if !ok {
		return nil, eris.Errorf("dataset: unknown dataset %q", name)
	}
	return d, nil
}

// All returns all datasets in registration order.
func (r *Registry) All() []DataSet {
	result := make([]DataSet, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.datasets[name])
	}
	return result
}

// AllNames returns all registered dataset names in registration order.
func (r *Registry) AllNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
