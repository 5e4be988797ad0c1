package feed

import (
	"fmt"
	"sort"
	"sync"
)

// Registration declares one service for the registry. An Override
// registration supersedes the plain registration of the same identifier;
// the full system uses this to let a site package replace a stock partner
// feed.
type Registration struct {
	Service  Service
	Override bool
}

// Registry resolves feed identifiers to services. It is built once, lazily,
// and is read-only afterwards, so it can be shared across concurrent
// requests without locking.
type Registry struct {
	regs []Registration

	once    sync.Once
	err     error
	byID    map[string]Service
	ordered []Service
}

func NewRegistry(regs ...Registration) *Registry {
	return &Registry{regs: regs}
}

// Init forces the one-time build, surfacing configuration errors at process
// startup instead of on the first request.
func (r *Registry) Init() error {
	r.once.Do(r.build)
	return r.err
}

func (r *Registry) build() {
	type slot struct {
		service  Service
		override bool
		index    int
	}
	resolved := map[string]*slot{}
	for i, reg := range r.regs {
		id := reg.Service.Identifier()
		existing, ok := resolved[id]
		switch {
		case !ok:
			resolved[id] = &slot{service: reg.Service, override: reg.Override, index: i}
		case reg.Override && existing.override:
			// Two overrides for one identifier cannot be resolved
			// deterministically; refuse to pick one.
			r.err = fmt.Errorf("feed: conflicting override registrations for %q", id)
			return
		case reg.Override:
			resolved[id] = &slot{service: reg.Service, override: true, index: existing.index}
		default:
			// First plain registration wins.
		}
	}

	slots := make([]*slot, 0, len(resolved))
	for _, s := range resolved {
		slots = append(slots, s)
	}
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].service.Priority() != slots[j].service.Priority() {
			return slots[i].service.Priority() > slots[j].service.Priority()
		}
		return slots[i].index < slots[j].index
	})

	r.byID = make(map[string]Service, len(slots))
	r.ordered = make([]Service, 0, len(slots))
	for _, s := range slots {
		r.byID[s.service.Identifier()] = s.service
		r.ordered = append(r.ordered, s.service)
	}
}

// Get returns the service registered under id.
func (r *Registry) Get(id string) (Service, bool) {
	if r.Init() != nil {
		return nil, false
	}
	svc, ok := r.byID[id]
	return svc, ok
}

// List returns all resolved services grouped by priority, highest first.
// Repeated calls return the same cached slice.
func (r *Registry) List() []Service {
	if r.Init() != nil {
		return nil
	}
	return r.ordered
}
