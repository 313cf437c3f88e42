package transport

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

const (
	// Supported transport kinds.
	KindResty    = "resty"
	KindNetHTTP  = "nethttp"
	KindFastHTTP = "fasthttp"
)

// ErrUnknownKind is returned when no backend is registered for a kind.
var ErrUnknownKind = errors.New("unknown transport kind")

// Builder creates a Transport backend.
type Builder func() Transport

// Registry maps transport kinds to builders.
type Registry interface {
	Register(kind string, builder Builder)
	New(kind string) (Transport, error)
	Kinds() []string
}

type registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry returns a registry with optional pre-registered builders.
func NewRegistry(builders map[string]Builder) Registry {
	r := &registry{
		builders: make(map[string]Builder),
	}
	for kind, b := range builders {
		r.Register(kind, b)
	}
	return r
}

// Register associates a builder with a transport kind.
func (r *registry) Register(kind string, builder Builder) {
	if kind = strings.TrimSpace(strings.ToLower(kind)); kind == "" || builder == nil {
		return
	}

	r.mu.Lock()
	r.builders[kind] = builder
	r.mu.Unlock()
}

// New builds the transport registered for the given kind. The lookup happens
// before any network activity, so misconfiguration surfaces eagerly.
func (r *registry) New(kind string) (Transport, error) {
	key := strings.TrimSpace(strings.ToLower(kind))
	if key == "" {
		return nil, fmt.Errorf("%w: empty kind (supported: %s)", ErrUnknownKind, strings.Join(r.Kinds(), ", "))
	}

	r.mu.RLock()
	builder := r.builders[key]
	r.mu.RUnlock()

	if builder == nil {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownKind, kind, strings.Join(r.Kinds(), ", "))
	}
	return builder(), nil
}

// Kinds lists the registered transport kinds, sorted.
func (r *registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.builders))
	for kind := range r.builders {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// DefaultRegistry wires up the known backends.
func DefaultRegistry() Registry {
	builders := map[string]Builder{
		KindResty:    func() Transport { return NewResty() },
		KindNetHTTP:  func() Transport { return NewNetHTTP() },
		KindFastHTTP: func() Transport { return NewFastHTTP() },
	}
	return NewRegistry(builders)
}
