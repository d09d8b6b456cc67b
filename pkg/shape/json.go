package shape

// MethodRef identifies the method behind an instance.
type MethodRef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Description is the JSON form of an instance. Position and Board are set
// by the owning scene.
type Description struct {
	ID       string         `json:"id"`
	Method   MethodRef      `json:"method"`
	Props    Props          `json:"props,omitempty"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Scale    float64        `json:"scale"`
	Anchor   Anchor         `json:"anchor"`
	Visible  bool           `json:"visible"`
	Position *int           `json:"position,omitempty"`
	Board    *int           `json:"board,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// Describe returns the instance's description.
func (i *Instance) Describe() Description {
	i.mu.Lock()
	defer i.mu.Unlock()
	d := Description{
		ID:      i.id,
		Method:  MethodRef{Name: i.method.Name, Type: "shape"},
		Props:   i.props.Clone(),
		X:       i.x,
		Y:       i.y,
		Scale:   i.scale,
		Anchor:  i.anchor,
		Visible: i.visible,
	}
	if i.meta != nil {
		d.Meta = map[string]any(Props(i.meta).Clone())
	}
	return d
}
