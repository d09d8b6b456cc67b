package io

import (
	"context"
	"os"

	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/export"
	"github.com/matzehuels/artwork/pkg/scene"
	"github.com/matzehuels/artwork/pkg/shape"
	"github.com/matzehuels/artwork/pkg/workspace"
)

// Build creates a workspace from the description. Methods are resolved
// against the workspace registry, so pass workspace.WithRegistry.
func (d *Description) Build(ctx context.Context, opts ...workspace.Option) (*workspace.Workspace, error) {
	ws := workspace.New(opts...)

	if d.Document != "" {
		path := d.DocumentPath()
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read document %s", path)
		}
		if err := ws.Load(ctx, data); err != nil {
			return nil, err
		}
		if len(d.Artboards) > ws.Len() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%d artboards for a %d page document", len(d.Artboards), ws.Len())
		}
	}

	for i, a := range d.Artboards {
		var s *scene.Scene
		var err error
		if d.Document != "" {
			s, err = ws.Artboard(i)
		} else {
			s, err = ws.AddArtboard(a.Width, a.Height)
		}
		if err != nil {
			return nil, err
		}
		for j, e := range a.Elements {
			if err := place(s, e); err != nil {
				code := errors.GetCode(err)
				if code == "" {
					code = errors.ErrCodeInvalidInput
				}
				return nil, errors.Wrap(code, err, "artboard %d element %d", i, j)
			}
		}
	}
	return ws, nil
}

func place(s *scene.Scene, e Element) error {
	name, err := e.MethodName()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "method")
	}
	inst, err := s.Invoke(name, shape.Props(e.Props))
	if err != nil {
		return err
	}
	if err := inst.Transform(shape.Transform{X: e.X, Y: e.Y, Scale: e.Scale, Anchor: shape.Anchor(e.Anchor)}); err != nil {
		return err
	}
	if e.Visible != nil {
		inst.SetVisible(*e.Visible)
	}
	if e.Meta != nil {
		inst.SetMeta(e.Meta)
	}
	return nil
}

// ExportConfigs converts the description configs to export configs.
func (d *Description) ExportConfigs() []export.Config {
	if len(d.Configs) == 0 {
		return nil
	}
	out := make([]export.Config, len(d.Configs))
	for i, c := range d.Configs {
		out[i] = export.Config(c)
	}
	return out
}
