// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name>.  Components that
// need runtime dependencies (logger, session store, CSRF signer) are built in
// cmd/web and registered there; self-contained ones may call Register from
// an init() function.  Mount attaches every component’s Routes() under
// “/<name>” and first invokes Init() when the component implements
// Initializer.

package component

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Initializer is optional.  If a Component implements it, Mount calls Init
// once before mounting its routes and aborts on error.
type Initializer interface {
	Init() error
}

// Component contract.
//
// Routes() should mount BOTH page and API endpoints relative to the
// component prefix, e.g. for “contact”:
//
//	r := chi.NewRouter()
//	r.Get("/", getContact)             // GET /contact
//	r.Post("/change", postChange)      // POST /contact/change
//	return r
type Component interface {
	Name() string
	Routes() chi.Router
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register adds c, replacing any component with the same name.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Mount initializes every registered component and mounts its routes on r
// under “/<name>”.
func Mount(r chi.Router) error {
	for _, c := range All() {
		if in, ok := c.(Initializer); ok {
			if err := in.Init(); err != nil {
				return err
			}
		}
		r.Mount("/"+c.Name(), c.Routes())
	}
	return nil
}
