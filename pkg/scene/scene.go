package scene

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/observability"
	"github.com/matzehuels/artwork/pkg/render/document"
	"github.com/matzehuels/artwork/pkg/shape"
	"github.com/matzehuels/artwork/pkg/vector"
)

// Scene is one artboard. It is safe for concurrent use, but an export
// configures its elements, so concurrent exports with configs interleave.
type Scene struct {
	mu sync.RWMutex

	width, height float64
	index         int
	registry      *shape.Registry
	elements      []*shape.Instance

	source *document.Source
	page   int

	background  string
	supersample int
	logger      *log.Logger
}

// Option configures a Scene.
type Option func(*Scene)

// WithRegistry starts the scene with a copy of r's methods.
func WithRegistry(r *shape.Registry) Option {
	return func(s *Scene) {
		if r != nil {
			s.registry = r.Clone()
		}
	}
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIndex sets the board index reported in descriptions.
func WithIndex(i int) Option {
	return func(s *Scene) { s.index = i }
}

// WithSource marks the scene as derived from page (1-based) of src.
func WithSource(src *document.Source, page int) Option {
	return func(s *Scene) {
		s.source = src
		s.page = page
	}
}

// WithBackground sets the default raster background. Requests that carry
// their own background take precedence.
func WithBackground(color string) Option {
	return func(s *Scene) { s.background = color }
}

// WithSupersample sets the raster supersampling factor.
func WithSupersample(n int) Option {
	return func(s *Scene) { s.supersample = n }
}

// New creates an empty scene of the given size.
func New(width, height float64, opts ...Option) (*Scene, error) {
	if err := errors.ValidateSize(width, height); err != nil {
		return nil, err
	}
	s := &Scene{
		width:    width,
		height:   height,
		registry: shape.NewRegistry(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Size returns the canvas size.
func (s *Scene) Size() (width, height float64) {
	return s.width, s.height
}

// Index returns the board index.
func (s *Scene) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// SetIndex updates the board index.
func (s *Scene) SetIndex(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = i
}

// Derived reports whether the scene was built from a loaded document page.
func (s *Scene) Derived() bool { return s.source != nil }

// Source returns the loaded document and page the scene was derived from,
// or nil.
func (s *Scene) Source() (*document.Source, int) { return s.source, s.page }

// AddMethod registers m on the scene.
func (s *Scene) AddMethod(m shape.Method) error {
	return s.registry.Register(m)
}

// HasMethod reports whether a method called name is registered.
func (s *Scene) HasMethod(name string) bool {
	return s.registry.Has(name)
}

// Methods returns the registered methods in registration order.
func (s *Scene) Methods() []*shape.Method {
	return s.registry.Methods()
}

// Invoke creates an instance of the named method and appends it on top.
func (s *Scene) Invoke(name string, props shape.Props) (*shape.Instance, error) {
	inst, err := s.registry.Invoke(name, props)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.elements = append(s.elements, inst)
	n := len(s.elements)
	s.mu.Unlock()
	s.logger.Debug("added element", "scene", s.Index(), "method", name, "elements", n)
	return inst, nil
}

// Elements returns the elements in paint order.
func (s *Scene) Elements() []*shape.Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*shape.Instance, len(s.elements))
	copy(out, s.elements)
	return out
}

// Len returns the number of elements.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.elements)
}

// Position returns the paint position of inst, or -1 if the scene does not
// own it.
func (s *Scene) Position(inst *shape.Instance) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.position(inst)
}

func (s *Scene) position(inst *shape.Instance) int {
	for i, e := range s.elements {
		if e == inst {
			return i
		}
	}
	return -1
}

// Move places an owned element at position, shifting the others.
func (s *Scene) Move(inst *shape.Instance, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	from := s.position(inst)
	if from < 0 {
		return errors.New(errors.ErrCodeForeignElement, "element %s does not belong to board %d", inst.ID(), s.index)
	}
	if position < 0 || position >= len(s.elements) {
		return errors.New(errors.ErrCodeInvalidInput, "position %d out of range [0, %d)", position, len(s.elements))
	}
	s.elements = append(s.elements[:from], s.elements[from+1:]...)
	s.elements = append(s.elements[:position], append([]*shape.Instance{inst}, s.elements[position:]...)...)
	return nil
}

// Remove drops an owned element.
func (s *Scene) Remove(inst *shape.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.position(inst)
	if i < 0 {
		return errors.New(errors.ErrCodeForeignElement, "element %s does not belong to board %d", inst.ID(), s.index)
	}
	s.elements = append(s.elements[:i], s.elements[i+1:]...)
	return nil
}

// Configure applies cfg to every element. The configurers run
// concurrently and the new props are installed only when all of them
// succeed. It is a no-op for an empty cfg.
func (s *Scene) Configure(ctx context.Context, cfg shape.Config) error {
	if len(cfg) == 0 {
		return nil
	}
	elems := s.Elements()
	next := make([]shape.Props, len(elems))

	g, gctx := errgroup.WithContext(ctx)
	for n, inst := range elems {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			props, err := inst.Configured(cfg)
			next[n] = props
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for n, inst := range elems {
		if next[n] != nil {
			inst.ReplaceProps(next[n])
		}
	}
	return nil
}

// Compile compiles every stale visible element concurrently.
func (s *Scene) Compile(ctx context.Context) error {
	start := time.Now()
	elems := s.visible()

	g, gctx := errgroup.WithContext(ctx)
	for _, inst := range elems {
		if inst.State() == shape.Fresh {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := inst.Compile()
			return err
		})
	}
	err := g.Wait()
	observability.Pipeline().OnCompileComplete(ctx, len(elems), time.Since(start), err)
	if err == nil {
		s.logger.Debug("compiled scene", "scene", s.Index(), "elements", len(elems), "duration", time.Since(start))
	}
	return err
}

func (s *Scene) visible() []*shape.Instance {
	all := s.Elements()
	out := all[:0]
	for _, inst := range all {
		if inst.Visible() {
			out = append(out, inst)
		}
	}
	return out
}

// Nodes compiles the scene and returns the placed children of every visible
// element in paint order.
func (s *Scene) Nodes(ctx context.Context) ([]*vector.Node, error) {
	if err := s.Compile(ctx); err != nil {
		return nil, err
	}
	var nodes []*vector.Node
	for _, inst := range s.visible() {
		n, err := inst.Nodes()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n...)
	}
	return nodes, nil
}

// Markup renders the scene as a standalone SVG document whose viewBox is the
// scene size.
func (s *Scene) Markup(ctx context.Context) ([]byte, error) {
	nodes, err := s.Nodes(ctx)
	if err != nil {
		return nil, err
	}
	return vector.Markup(vector.NewDocument(s.width, s.height, nodes...))
}
