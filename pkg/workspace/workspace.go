// Package workspace manages an ordered set of artboards that share one method
// registry and export together.
//
// # Method propagation
//
// Methods registered on a workspace are available on every artboard,
// whether the artboard was added before or after the registration. A
// registration that would conflict on any artboard fails without touching
// any of them.
//
// # Variant cycling
//
// Exports take an optional list of configs. The list must hold at least one
// config per artboard; config i is applied to artboard i % n, so a longer
// list cycles through the artboards to produce more variants than there are
// boards. See [Workspace.Targets].
//
// # Loaded documents
//
// [Workspace.Load] builds one artboard per page of an existing PDF. Such a
// workspace exports as PDF (the original page becomes the background of
// each page) or JSON only.
package workspace

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/render/document"
	"github.com/matzehuels/artwork/pkg/scene"
	"github.com/matzehuels/artwork/pkg/shape"
)

// Workspace is an ordered collection of artboards. It is safe for
// concurrent use.
type Workspace struct {
	mu sync.RWMutex

	registry  *shape.Registry
	scenes    []*scene.Scene
	source    *document.Source
	logger    *log.Logger
	sceneOpts []scene.Option
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithRegistry starts the workspace with a copy of r's methods.
func WithRegistry(r *shape.Registry) Option {
	return func(w *Workspace) {
		if r != nil {
			w.registry = r.Clone()
		}
	}
}

// WithLogger sets the logger used by the workspace and its artboards.
func WithLogger(l *log.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithSceneOptions adds options applied to every artboard the workspace
// creates.
func WithSceneOptions(opts ...scene.Option) Option {
	return func(w *Workspace) {
		w.sceneOpts = append(w.sceneOpts, opts...)
	}
}

// New creates an empty workspace.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		registry: shape.NewRegistry(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) newScene(width, height float64, index int, extra ...scene.Option) (*scene.Scene, error) {
	opts := append([]scene.Option{
		scene.WithRegistry(w.registry),
		scene.WithLogger(w.logger),
		scene.WithIndex(index),
	}, w.sceneOpts...)
	return scene.New(width, height, append(opts, extra...)...)
}

// AddArtboard appends a new artboard of the given size with every workspace
// method registered on it.
func (w *Workspace) AddArtboard(width, height float64) (*scene.Scene, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.source != nil {
		return nil, errors.New(errors.ErrCodeDocumentDerived, "cannot add artboards to a workspace loaded from a document")
	}
	s, err := w.newScene(width, height, len(w.scenes))
	if err != nil {
		return nil, err
	}
	w.scenes = append(w.scenes, s)
	w.logger.Debug("added artboard", "scene", len(w.scenes)-1, "width", width, "height", height)
	return s, nil
}

// AddMethod registers m on the workspace and on every existing artboard.
func (w *Workspace) AddMethod(m shape.Method) error {
	if err := m.Validate(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.registry.Has(m.Name) {
		return errors.New(errors.ErrCodeDuplicateMethod, "method %q already registered", m.Name)
	}
	for i, s := range w.scenes {
		if s.HasMethod(m.Name) {
			return errors.New(errors.ErrCodeDuplicateMethod, "method %q already registered on artboard %d", m.Name, i)
		}
	}

	if err := w.registry.Register(m); err != nil {
		return err
	}
	for _, s := range w.scenes {
		if err := s.AddMethod(m); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "propagate method %q", m.Name)
		}
	}
	return nil
}

// Methods returns the workspace methods in registration order.
func (w *Workspace) Methods() []*shape.Method {
	return w.registry.Methods()
}

// Artboards returns the artboards in order.
func (w *Workspace) Artboards() []*scene.Scene {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*scene.Scene, len(w.scenes))
	copy(out, w.scenes)
	return out
}

// Artboard returns artboard i.
func (w *Workspace) Artboard(i int) (*scene.Scene, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if i < 0 || i >= len(w.scenes) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "artboard %d out of range [0, %d)", i, len(w.scenes))
	}
	return w.scenes[i], nil
}

// Len returns the number of artboards.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.scenes)
}

// Derived reports whether the workspace was loaded from a document.
func (w *Workspace) Derived() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.source != nil
}

// Load builds one artboard per page of the PDF in data, each sized to its
// page. The workspace must not have artboards yet.
func (w *Workspace) Load(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := document.Load(data)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.scenes) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "load into a workspace that already has %d artboards", len(w.scenes))
	}
	scenes := make([]*scene.Scene, 0, src.PageCount())
	for i, p := range src.Pages() {
		s, err := w.newScene(p.Width, p.Height, i, scene.WithSource(src, i+1))
		if err != nil {
			return errors.Wrap(errors.ErrCodeDocument, err, "page %d", i+1)
		}
		scenes = append(scenes, s)
	}
	w.scenes = scenes
	w.source = src
	w.logger.Debug("loaded document", "pages", len(scenes))
	return nil
}

// Targets maps n configs onto artboards: config i targets artboard
// i % Len(). It fails with ErrCodeConfigCount when n is smaller than the
// number of artboards.
func (w *Workspace) Targets(n int) ([]int, error) {
	boards := w.Len()
	if boards == 0 {
		return nil, errors.New(errors.ErrCodeEmptyWorkspace, "workspace has no artboards")
	}
	if n < boards {
		return nil, errors.New(errors.ErrCodeConfigCount, "%d configs for %d artboards", n, boards)
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i % boards
	}
	return out, nil
}
