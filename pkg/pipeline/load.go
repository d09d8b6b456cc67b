package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/matzehuels/artwork/pkg/cache"
	"github.com/matzehuels/artwork/pkg/errors"
	pkgio "github.com/matzehuels/artwork/pkg/io"
	"github.com/matzehuels/artwork/pkg/observability"
	"github.com/matzehuels/artwork/pkg/scene"
	"github.com/matzehuels/artwork/pkg/workspace"
)

// Load builds a workspace from desc with the runner's methods registered.
func (r *Runner) Load(ctx context.Context, desc *pkgio.Description, opts Options) (*workspace.Workspace, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Source)
	ws, err := desc.Build(ctx,
		workspace.WithRegistry(r.Registry),
		workspace.WithLogger(opts.Logger),
		workspace.WithSceneOptions(scene.WithSupersample(opts.Supersample)),
	)
	boards := 0
	if ws != nil {
		boards = ws.Len()
	}
	observability.Pipeline().OnLoadComplete(ctx, opts.Source, boards, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return ws, nil
}

// HashDescription hashes the JSON form of desc together with the bytes of
// the document it references, if any.
func HashDescription(desc *pkgio.Description) (string, error) {
	key := struct {
		Desc     *pkgio.Description `json:"desc"`
		Document string             `json:"document,omitempty"`
	}{Desc: desc}
	if path := desc.DocumentPath(); path != "" {
		doc, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "read document %s", path)
		}
		key.Document = cache.Hash(doc)
	}
	h, err := cache.HashJSON(key)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "encode description")
	}
	return h, nil
}

// countElements returns the number of elements across all artboards.
func countElements(desc *pkgio.Description) int {
	n := 0
	for _, a := range desc.Artboards {
		n += len(a.Elements)
	}
	return n
}
