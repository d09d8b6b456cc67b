package shape

import (
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/vector"
)

// State is the compile cache state of an instance.
type State int

const (
	// Stale means the compiled output does not reflect the current props or
	// transform.
	Stale State = iota
	// Fresh means the compiled output was produced from the current props
	// and transform.
	Fresh
)

func (s State) String() string {
	if s == Fresh {
		return "fresh"
	}
	return "stale"
}

// Transform is a relative placement change. X and Y are added to the
// position, Scale multiplies the scale (0 leaves it unchanged) and a
// non-empty Anchor replaces the anchor.
type Transform struct {
	X, Y   float64
	Scale  float64
	Anchor Anchor
}

// Instance is one placed occurrence of a shape method. Its state is guarded
// by a mutex so different goroutines may compile different instances, or
// read the same one, concurrently.
type Instance struct {
	mu sync.Mutex

	id       string
	method   *Method
	defaults Props
	props    Props
	meta     map[string]any
	visible  bool

	x, y   float64
	scale  float64
	anchor Anchor

	state     State
	revision  uint64
	fragment  *vector.Fragment
	box       vector.Box
	width     float64
	height    float64
	transform string
}

// NewInstance creates an instance of m. props are merged over m.Defaults
// and become the instance defaults.
func NewInstance(m *Method, props Props) *Instance {
	defaults := Merge(m.Defaults, props)
	return &Instance{
		id:       uuid.NewString(),
		method:   m,
		defaults: defaults,
		props:    defaults.Clone(),
		visible:  true,
		scale:    1,
		anchor:   TopLeft,
	}
}

// ID returns the instance's stable identifier.
func (i *Instance) ID() string { return i.id }

// Method returns the method the instance was created from.
func (i *Instance) Method() *Method { return i.method }

// Name returns the method name.
func (i *Instance) Name() string { return i.method.Name }

// State returns the cache state.
func (i *Instance) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Revision counts successful compilations. Callers caching derived output
// compare revisions to detect recompiles.
func (i *Instance) Revision() uint64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.revision
}

// Props returns a copy of the working props.
func (i *Instance) Props() Props {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.props.Clone()
}

// Defaults returns a copy of the props the instance was created with.
func (i *Instance) Defaults() Props {
	return i.defaults.Clone()
}

// Position returns the position before anchoring.
func (i *Instance) Position() (x, y float64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.x, i.y
}

// Scale returns the scale factor.
func (i *Instance) Scale() float64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.scale
}

// Anchor returns the anchor.
func (i *Instance) Anchor() Anchor {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.anchor
}

// Visible reports whether scenes draw the instance.
func (i *Instance) Visible() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.visible
}

// SetVisible shows or hides the instance.
func (i *Instance) SetVisible(v bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.visible = v
}

// Meta returns a copy of the caller-supplied metadata.
func (i *Instance) Meta() map[string]any {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.meta == nil {
		return nil
	}
	return map[string]any(Props(i.meta).Clone())
}

// SetMeta replaces the metadata. Metadata never affects compilation.
func (i *Instance) SetMeta(meta map[string]any) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.meta = map[string]any(Props(meta).Clone())
}

// Compile runs the compiler against the current props and transform and
// marks the instance Fresh. It returns the instance for chaining.
func (i *Instance) Compile() (*Instance, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i, i.compile()
}

func (i *Instance) compile() error {
	name := i.method.Name
	frag, err := i.method.Compiler(i.props.Clone())
	if err != nil {
		return errors.Wrap(errors.ErrCodeCompilation, err, "compiler %q", name)
	}
	box, err := frag.Box()
	if err != nil {
		return errors.Wrap(errors.ErrCodeCompilation, err, "compiler %q", name)
	}

	w, h := box.Width*i.scale, box.Height*i.scale
	dx, dy := i.anchor.Offset(w, h)
	x, y := i.x+dx, i.y+dy

	var parts []string
	if x != 0 || y != 0 {
		parts = append(parts, "translate("+vector.Num(x)+","+vector.Num(y)+")")
	}
	if i.scale != 1 {
		parts = append(parts, "scale("+vector.Num(i.scale)+")")
	}
	if box.MinX != 0 || box.MinY != 0 {
		parts = append(parts, "translate("+vector.Num(-box.MinX)+","+vector.Num(-box.MinY)+")")
	}

	i.fragment = frag
	i.box = box
	i.width, i.height = w, h
	i.transform = strings.Join(parts, " ")
	i.state = Fresh
	i.revision++
	return nil
}

func (i *Instance) ensure() error {
	if i.state == Fresh {
		return nil
	}
	return i.compile()
}

// Configure replaces the working props with the configurer's output for
// cfg, always starting from the defaults. It is a no-op for an empty cfg or
// when the method has no configurer.
func (i *Instance) Configure(cfg Config) error {
	props, err := i.Configured(cfg)
	if err != nil || props == nil {
		return err
	}
	i.ReplaceProps(props)
	return nil
}

// Configured returns the props Configure would install for cfg without
// touching i. The props are nil when Configure would be a no-op.
func (i *Instance) Configured(cfg Config) (Props, error) {
	if len(cfg) == 0 || i.method.Configurer == nil {
		return nil, nil
	}
	props, err := i.method.Configurer(i.defaults.Clone(), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "configure %q", i.method.Name)
	}
	return props, nil
}

// ReplaceProps installs props as the working props and marks i Stale.
func (i *Instance) ReplaceProps(props Props) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.props = props
	i.state = Stale
}

// SetProps merges changes into the working props. Unknown keys fail with
// ErrCodeInvalidProps.
func (i *Instance) SetProps(changes Props) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	props, err := SetProps(i.props, changes)
	if err != nil {
		return err
	}
	i.props = props
	i.state = Stale
	return nil
}

// Reset restores the working props to the defaults.
func (i *Instance) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.props = i.defaults.Clone()
	i.state = Stale
}

// Transform applies a relative placement change and marks the instance
// Stale.
func (i *Instance) Transform(t Transform) error {
	if math.IsNaN(t.X) || math.IsNaN(t.Y) || math.IsInf(t.X, 0) || math.IsInf(t.Y, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "transform offset must be finite")
	}
	if err := errors.ValidateScale(t.Scale); err != nil {
		return err
	}
	anchor := Anchor("")
	if t.Anchor != "" {
		a, err := ParseAnchor(string(t.Anchor))
		if err != nil {
			return err
		}
		anchor = a
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.x += t.X
	i.y += t.Y
	if t.Scale != 0 {
		i.scale *= t.Scale
	}
	if anchor != "" {
		i.anchor = anchor
	}
	i.state = Stale
	return nil
}

// Size returns the scaled width and height, compiling first when Stale.
func (i *Instance) Size() (width, height float64, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensure(); err != nil {
		return 0, 0, err
	}
	return i.width, i.height, nil
}

// TransformString returns the transform applied to the compiled children,
// compiling first when Stale. It is empty when no transform is needed.
func (i *Instance) TransformString() (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensure(); err != nil {
		return "", err
	}
	return i.transform, nil
}

// Nodes returns the placed children, compiling first when Stale. When a
// transform is needed the children are wrapped in a group carrying it.
// The returned nodes are copies.
func (i *Instance) Nodes() ([]*vector.Node, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensure(); err != nil {
		return nil, err
	}
	return wrap(i.fragment.Children, i.transform), nil
}

// standalone returns the children placed on a canvas of the scaled box,
// ignoring position and anchor.
func (i *Instance) standalone() ([]*vector.Node, float64, float64, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensure(); err != nil {
		return nil, 0, 0, err
	}
	var parts []string
	if i.scale != 1 {
		parts = append(parts, "scale("+vector.Num(i.scale)+")")
	}
	if i.box.MinX != 0 || i.box.MinY != 0 {
		parts = append(parts, "translate("+vector.Num(-i.box.MinX)+","+vector.Num(-i.box.MinY)+")")
	}
	return wrap(i.fragment.Children, strings.Join(parts, " ")), i.width, i.height, nil
}

func wrap(children []*vector.Node, transform string) []*vector.Node {
	cloned := make([]*vector.Node, len(children))
	for k, c := range children {
		cloned[k] = c.Clone()
	}
	if transform == "" {
		return cloned
	}
	return []*vector.Node{vector.El("g", vector.A("transform", transform)).Append(cloned...)}
}
