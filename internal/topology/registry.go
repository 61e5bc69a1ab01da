// Package topology holds the in-memory model of a single network while it is
// being generated: every object indexed by name and ObjectID, and the set of
// unordered paths between host pools.
package topology

import (
	"strings"

	"bpauto/internal/domain"
)

// Filter restricts prefix lookups to a subset of classes
type Filter func(domain.Class) bool

// Predefined filters
var (
	Any               Filter = func(domain.Class) bool { return true }
	ContainerEligible Filter = domain.Class.IsContainer
	HostPool          Filter = func(c domain.Class) bool { return c == domain.ClassIPStaticHosts }
)

// Registry owns all objects and paths of one network.
// It is not safe for concurrent use; a build runs on a single goroutine.
type Registry struct {
	objects   []domain.Object
	byName    map[string]domain.ObjectID
	paths     []domain.Path
	pathIndex map[domain.PathKey]bool
	finalized bool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byName:    make(map[string]domain.ObjectID),
		pathIndex: make(map[domain.PathKey]bool),
	}
}

// Register inserts obj and returns its assigned ObjectID
func (r *Registry) Register(obj domain.Object) (domain.ObjectID, error) {
	if r.finalized {
		return domain.NoObject, domain.ErrFinalized
	}
	if _, exists := r.byName[obj.Name]; exists {
		return domain.NoObject, &domain.DuplicateNameError{Name: obj.Name}
	}

	id := domain.ObjectID(len(r.objects))
	obj.ID = id
	if obj.Container != domain.NoObject {
		if c, ok := r.Object(obj.Container); ok {
			obj.ContainerName = c.Name
		}
	}
	r.objects = append(r.objects, obj)
	r.byName[obj.Name] = id
	return id, nil
}

// Object returns the object with the given ID
func (r *Registry) Object(id domain.ObjectID) (domain.Object, bool) {
	if id < 0 || int(id) >= len(r.objects) {
		return domain.Object{}, false
	}
	return r.objects[id], true
}

// Lookup returns the object registered under name
func (r *Registry) Lookup(name string) (domain.Object, bool) {
	id, ok := r.byName[name]
	if !ok {
		return domain.Object{}, false
	}
	return r.objects[id], true
}

// ObjectsWithPrefix returns, in insertion order, the IDs of every object
// accepted by filter whose name starts with prefix
func (r *Registry) ObjectsWithPrefix(filter Filter, prefix string) []domain.ObjectID {
	if filter == nil {
		filter = Any
	}
	var ids []domain.ObjectID
	for _, obj := range r.objects {
		if filter(obj.Class) && strings.HasPrefix(obj.Name, prefix) {
			ids = append(ids, obj.ID)
		}
	}
	return ids
}

// Names resolves IDs to object names
func (r *Registry) Names(ids []domain.ObjectID) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if obj, ok := r.Object(id); ok {
			names = append(names, obj.Name)
		}
	}
	return names
}

// PathExists reports whether the unordered pair {a, b} was already added
func (r *Registry) PathExists(a, b string) bool {
	return r.pathIndex[domain.NewPath(a, b).Key()]
}

// AddPath records the unordered pair {a, b}. Callers check PathExists first;
// adding an existing pair is an error.
func (r *Registry) AddPath(a, b string) error {
	if r.finalized {
		return domain.ErrFinalized
	}
	p := domain.NewPath(a, b)
	if r.pathIndex[p.Key()] {
		return &domain.PathExistsError{A: a, B: b}
	}
	r.pathIndex[p.Key()] = true
	r.paths = append(r.paths, p)
	return nil
}

// Paths returns the paths in the order they were added
func (r *Registry) Paths() []domain.Path {
	out := make([]domain.Path, len(r.paths))
	copy(out, r.paths)
	return out
}

// Objects returns a copy of all objects in registration order
func (r *Registry) Objects() []domain.Object {
	out := make([]domain.Object, len(r.objects))
	copy(out, r.objects)
	return out
}

// Len returns the number of registered objects
func (r *Registry) Len() int {
	return len(r.objects)
}

// Finalize freezes the registry; later mutations fail with ErrFinalized
func (r *Registry) Finalize() {
	r.finalized = true
}

// Finalized reports whether Finalize was called
func (r *Registry) Finalized() bool {
	return r.finalized
}
