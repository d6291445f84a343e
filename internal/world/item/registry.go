package item

import "sort"

// Registry looks items up by id. It does not own them.
type Registry struct {
	items map[string]*Item
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*Item)}
}

// Add registers it under id. An existing entry is silently replaced.
func (r *Registry) Add(id string, it *Item) {
	r.items[id] = it
}

// Get returns the item registered under id.
func (r *Registry) Get(id string) (*Item, bool) {
	it, ok := r.items[id]
	return it, ok
}

// Len returns the number of registered items.
func (r *Registry) Len() int {
	return len(r.items)
}

// IDs returns all registered ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
