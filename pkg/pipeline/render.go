package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/artwork/pkg/export"
	"github.com/matzehuels/artwork/pkg/workspace"
)

// Render exports ws in every format of opts. fallback configs apply when
// opts.Configs is empty.
func Render(ctx context.Context, ws *workspace.Workspace, opts Options, fallback []export.Config) (map[string]export.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	configs := opts.Configs
	if len(configs) == 0 {
		configs = fallback
	}

	artifacts := make(map[string]export.Result, len(opts.ExportFormats()))
	for _, f := range opts.ExportFormats() {
		res, err := ws.Export(ctx, opts.Request(f, configs))
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		artifacts[f.String()] = res
	}
	return artifacts, nil
}
