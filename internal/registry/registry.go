// Package registry holds the fixed, ordered set of checks for one run.
// Registration order is significant: it determines report ordering, and
// by convention liveness checks are registered before resource checks.
package registry

import (
	"errors"
	"fmt"

	"github.com/hamed0406/healthagg/internal/probe"
)

var ErrDuplicateName = errors.New("registry: duplicate check name")

// Kind classifies a check for reporting.
type Kind string

const (
	KindLiveness  Kind = "liveness"
	KindReadiness Kind = "readiness"
	KindResource  Kind = "resource"
)

// Definition is one static registration entry.
type Definition struct {
	Name    string
	Kind    Kind
	Checker probe.Checker
}

// Registry is built once per process invocation and discarded at exit;
// there is no removal operation.
type Registry struct {
	defs  []Definition
	names map[string]struct{}
}

func New() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register appends a definition. Names must be unique across the run.
func (r *Registry) Register(d Definition) error {
	if d.Name == "" {
		return errors.New("registry: empty check name")
	}
	if d.Checker == nil {
		return fmt.Errorf("registry: check %q has no prober", d.Name)
	}
	if _, ok := r.names[d.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, d.Name)
	}
	r.names[d.Name] = struct{}{}
	r.defs = append(r.defs, d)
	return nil
}

// All returns the definitions in registration order.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

func (r *Registry) Len() int { return len(r.defs) }
