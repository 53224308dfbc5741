package cascade

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Function is a helper callable from match clauses.
type Function func(args ...any) (any, error)

// FunctionRegistry stores match helpers keyed by lower-cased name.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: map[string]Function{}}
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register stores fn under name and rejects duplicates and blank names.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	key := registryKey(name)
	switch {
	case fn == nil:
		return fmt.Errorf("cascade: function %q is nil", name)
	case key == "":
		return fmt.Errorf("cascade: function name must not be empty")
	case key == "row" || key == "args":
		return fmt.Errorf("cascade: function name %q is reserved", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = map[string]Function{}
	}
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("cascade: function %q already registered", name)
	}
	r.functions[key] = fn
	return nil
}

// Has reports whether name is registered.
func (r *FunctionRegistry) Has(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.functions[registryKey(name)]
	return ok
}

// Clone returns a shallow copy; later registrations on either side stay local.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{functions: make(map[string]Function, len(r.functions))}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call runs the function registered under name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("cascade: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[registryKey(name)]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("cascade: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns the registered names sorted.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithFunctionRegistry exposes registry functions to match clauses.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *config) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name for match clauses.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *config) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}
