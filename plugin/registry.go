package plugin

import (
	"context"
	"fmt"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Registry holds compiled-in plugins in registration order.
type Registry struct {
	mu   sync.RWMutex
	regs []Registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry the generated code fills.
func Default() *Registry {
	return defaultRegistry
}

// Register adds reg to the default registry. Called from init functions.
func Register(reg Registration) {
	defaultRegistry.Register(reg)
}

// Register appends reg. IDs are not deduplicated.
func (r *Registry) Register(reg Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regs = append(r.regs, reg)
}

// Registrations returns a copy of all registrations in order.
func (r *Registry) Registrations() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Registration, len(r.regs))
	copy(out, r.regs)
	return out
}

// Candidates implements Source.
func (r *Registry) Candidates(ctx context.Context) ([]Candidate, error) {
	regs := r.Registrations()
	out := make([]Candidate, 0, len(regs))
	for _, reg := range regs {
		out = append(out, Candidate{ID: reg.ID, Origin: reg.origin(), Factory: reg.Config})
	}
	return out, nil
}

func (reg Registration) origin() string {
	if reg.Dir != "" {
		return reg.Dir
	}
	return "registry:" + reg.ID
}

// Mount registers on g the routes of every plugin whose config resolved
// Valid in entries. A plugin with an invalid config contributes neither nav
// entries nor routes. A RouteFunc that panics is logged and skipped; routes
// it added before panicking stay mounted.
func (r *Registry) Mount(g *echo.Group, h Host, entries []Entry, log *zap.Logger) int {
	valid := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Kind == Valid {
			valid[e.ID+"\x00"+e.Origin] = true
		}
	}
	mounted := 0
	for _, reg := range r.Registrations() {
		if reg.Routes == nil {
			continue
		}
		if !valid[reg.ID+"\x00"+reg.origin()] {
			log.Warn("plugin routes not mounted",
				zap.String("plugin", reg.ID),
				zap.String("reason", "config did not resolve"))
			continue
		}
		if err := mountOne(reg, g, h); err != nil {
			log.Error("plugin routes skipped",
				zap.String("plugin", reg.ID),
				zap.Error(err))
			continue
		}
		mounted++
	}
	return mounted
}

func mountOne(reg Registration, g *echo.Group, h Host) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	reg.Routes(g, h)
	return nil
}
