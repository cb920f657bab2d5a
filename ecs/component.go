package ecs

// ComponentID identifies one registered component type within a Registry.
// IDs are assigned densely in registration order.
type ComponentID uint8

// maxComponents bounds the registry so access sets fit in a fixed-size mask.
const maxComponents = 256

// Registry holds the closed set of component types backing a World.
// Each Registry owns its own column set, so multiple independent worlds can
// coexist without interference. Registration is finished once a World is
// built from the registry.
type Registry struct {
	columns []column
	names   map[string]ComponentID
	frozen  bool
}

// NewRegistry creates an empty component registry.
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]ComponentID),
	}
}

// Len returns the number of registered component types.
func (r *Registry) Len() int {
	return len(r.columns)
}

// Name returns the registered name for a component ID, or "" if out of range.
func (r *Registry) Name(id ComponentID) string {
	if int(id) >= len(r.columns) {
		return ""
	}
	return r.columns[id].name()
}

// column is the type-erased interface over one typed component column.
// Slot management is driven by the entity table; systems never call these.
type column interface {
	name() string
	grow(n int)
	reset(slot int)
	len() int
}

// store is the concrete columnar storage for component type T: one dense
// slice cell per entity slot, default-initialized.
type store[T any] struct {
	label string
	def   T
	data  []T
}

func (s *store[T]) name() string { return s.label }

func (s *store[T]) grow(n int) {
	for len(s.data) < n {
		s.data = append(s.data, s.def)
	}
}

func (s *store[T]) reset(slot int) {
	s.data[slot] = s.def
}

func (s *store[T]) len() int { return len(s.data) }

// Handle provides typed access to one component column. Handles are cheap
// value types obtained at registration time; systems capture them instead of
// looking components up by name in the per-frame hot path.
type Handle[T any] struct {
	id ComponentID
}

// ID returns the component ID for use in access declarations.
func (h Handle[T]) ID() ComponentID { return h.id }

// Data returns the column's backing slice, indexed by entity slot. The slice
// is valid for the duration of a frame (slots never move mid-frame) and, for
// readers, between two RunFrame calls. Writing outside a declared write set
// is a scheduling violation the caller must not commit.
func (h Handle[T]) Data(w *World) []T {
	return w.columns[h.id].(*store[T]).data
}

// Get returns a pointer to the component value for a live entity.
func (h Handle[T]) Get(w *World, id EntityID) (*T, error) {
	slot, err := w.Slot(id)
	if err != nil {
		return nil, err
	}
	return &w.columns[h.id].(*store[T]).data[slot], nil
}

// RegisterComponent registers component type T under the given name with a
// per-slot default value, returning a typed handle to its column.
func RegisterComponent[T any](r *Registry, name string, def T) (Handle[T], error) {
	if r.frozen {
		return Handle[T]{}, StartedError{}
	}
	if _, ok := r.names[name]; ok {
		return Handle[T]{}, DuplicateComponentError{Name: name}
	}
	if len(r.columns) >= maxComponents {
		return Handle[T]{}, ErrRegistryFull
	}

	id := ComponentID(len(r.columns))
	r.columns = append(r.columns, &store[T]{label: name, def: def})
	r.names[name] = id
	return Handle[T]{id: id}, nil
}
