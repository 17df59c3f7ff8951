package providers

import (
	"sort"
	"sync"

	"github.com/resolvarr/resolvarr/internal/models"
)

// Registry holds all registered content providers keyed by ID. New providers
// register without the matcher or aggregator knowing about them.
type Registry struct {
	mu        sync.RWMutex
	providers map[ProviderID]ContentProvider
	order     []ProviderID
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[ProviderID]ContentProvider),
	}
}

// Register adds a provider to the registry. Re-registering an ID replaces
// the previous provider but keeps its original position in the fan-out order.
func (r *Registry) Register(p ContentProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[p.ID()]; !exists {
		r.order = append(r.order, p.ID())
	}
	r.providers[p.ID()] = p
}

// Get returns a provider by ID, or nil if not registered.
func (r *Registry) Get(id ProviderID) ContentProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.providers[id]
}

// All returns all registered providers in registration order.
func (r *Registry) All() []ContentProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ContentProvider, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.providers[id])
	}
	return result
}

// IDs returns the sorted IDs of all registered providers.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	return ids
}

// AlternatesFor returns, in registration order, every provider other than
// the primary whose declared types fall in the same category as the query
// type: video-type media only fans out to video-capable providers, reading
// media to manga/novel providers.
func (r *Registry) AlternatesFor(mediaType models.MediaType, primary ProviderID) []ContentProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []ContentProvider
	for _, id := range r.order {
		if id == primary {
			continue
		}
		p := r.providers[id]
		if servesCategory(p, mediaType) {
			result = append(result, p)
		}
	}
	return result
}

// servesCategory reports whether any of the provider's declared types share
// the query type's category (video vs reading).
func servesCategory(p ContentProvider, t models.MediaType) bool {
	for _, st := range p.SupportedTypes() {
		if t.IsVideo() && st.IsVideo() {
			return true
		}
		if t.IsReading() && st.IsReading() {
			return true
		}
	}
	return false
}
