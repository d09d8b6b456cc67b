package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/workspace"
)

// WriteJSON encodes the workspace description as indented JSON.
// The output can be read back with [ReadJSON].
func WriteJSON(ws *workspace.Workspace, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ws.Describe()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode description")
	}
	return nil
}

// ExportJSON writes the workspace description to a file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(ws *workspace.Workspace, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(ws, f)
}
