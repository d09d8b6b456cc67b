package scene

import "github.com/matzehuels/artwork/pkg/shape"

// Description is the JSON form of a scene.
type Description struct {
	Width    float64             `json:"width"`
	Height   float64             `json:"height"`
	Page     int                 `json:"page,omitempty"`
	Elements []shape.Description `json:"elements"`
}

// Describe returns the scene description with each element's position and
// board filled in.
func (s *Scene) Describe() Description {
	board := s.Index()
	elems := s.Elements()
	d := Description{
		Width:    s.width,
		Height:   s.height,
		Elements: make([]shape.Description, len(elems)),
	}
	if s.source != nil {
		d.Page = s.page
	}
	for i, inst := range elems {
		e := inst.Describe()
		e.Position = &i
		e.Board = &board
		d.Elements[i] = e
	}
	return d
}
