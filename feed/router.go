package feed

import "strings"

// Router maps request paths onto registered feed identifiers. Paths that do
// not name a registered feed are not ours and fall through to the caller's
// default handling.
type Router struct {
	registry *Registry
}

func NewRouter(registry *Registry) *Router {
	return &Router{registry: registry}
}

// Resolve returns the feed identifier for a path of the form
// "feed/<identifier>" when that identifier is registered.
func (r *Router) Resolve(path string) (string, bool) {
	id, ok := strings.CutPrefix(strings.Trim(path, "/"), "feed/")
	if !ok || id == "" || strings.ContainsRune(id, '/') {
		return "", false
	}
	if _, ok := r.registry.Get(id); !ok {
		return "", false
	}
	return id, true
}
