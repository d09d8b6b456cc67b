package shape

import (
	"sync"

	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/export"
	"github.com/matzehuels/artwork/pkg/vector"
)

// Config is a configuration object handed to configurers.
type Config = export.Config

// Compiler turns props into a vector fragment. The fragment must be an svg
// container with a viewBox.
type Compiler func(props Props) (*vector.Fragment, error)

// Configurer derives new props from the defaults and a config object. It is
// responsible for validating cfg.
type Configurer func(defaults Props, cfg Config) (Props, error)

// Method is a named shape compiler with an optional configurer.
type Method struct {
	Name        string
	Description string
	Compiler    Compiler
	Configurer  Configurer

	// Defaults are merged under the props passed to Invoke.
	Defaults Props
}

// Validate checks that m can be registered.
func (m Method) Validate() error {
	if err := errors.ValidateMethodName(m.Name); err != nil {
		return err
	}
	if m.Compiler == nil {
		return errors.New(errors.ErrCodeInvalidInput, "method %q has no compiler", m.Name)
	}
	return nil
}

// Registry holds methods in registration order. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	methods []*Method
	byName  map[string]*Method
}

// NewRegistry returns a registry holding methods. It panics if a method is
// invalid or duplicated; use Register for fallible registration.
func NewRegistry(methods ...Method) *Registry {
	r := &Registry{byName: make(map[string]*Method)}
	for _, m := range methods {
		if err := r.Register(m); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds m. Registering a name twice fails with
// ErrCodeDuplicateMethod.
func (r *Registry) Register(m Method) error {
	if err := m.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[m.Name]; ok {
		return errors.New(errors.ErrCodeDuplicateMethod, "method %q is already registered", m.Name)
	}
	m.Defaults = m.Defaults.Clone()
	r.methods = append(r.methods, &m)
	r.byName[m.Name] = &m
	return nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}

// Lookup returns the named method or ErrCodeUnknownMethod.
func (r *Registry) Lookup(name string) (*Method, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byName[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownMethod, "unknown method %q", name)
	}
	return m, nil
}

// Methods returns the registered methods in registration order.
func (r *Registry) Methods() []*Method {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Method(nil), r.methods...)
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.methods))
	for i, m := range r.methods {
		names[i] = m.Name
	}
	return names
}

// Len returns the number of methods.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.methods)
}

// Clone returns an independent registry sharing the method records.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := &Registry{
		methods: append([]*Method(nil), r.methods...),
		byName:  make(map[string]*Method, len(r.byName)),
	}
	for k, v := range r.byName {
		c.byName[k] = v
	}
	return c
}

// Invoke creates an instance of the named method. props are merged over
// the method's Defaults.
func (r *Registry) Invoke(name string, props Props) (*Instance, error) {
	m, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return NewInstance(m, props), nil
}
