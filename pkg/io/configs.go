package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/export"
)

// ReadConfigs decodes a list of export configs. JSON and YAML accept a bare
// list or an object with a configs key; TOML needs the configs key.
func ReadConfigs(r io.Reader, f Format) ([]export.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read configs")
	}

	var list []map[string]any
	var wrapped struct {
		Configs []map[string]any `json:"configs" toml:"configs" yaml:"configs"`
	}
	switch f {
	case JSON:
		if err = json.Unmarshal(data, &list); err != nil {
			err = json.Unmarshal(data, &wrapped)
		}
	case YAML:
		if err = yaml.Unmarshal(data, &list); err != nil {
			err = yaml.Unmarshal(data, &wrapped)
		}
	case TOML:
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&wrapped)
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedFormat, "unknown configs format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s configs", f)
	}
	if list == nil {
		list = wrapped.Configs
	}

	out := make([]export.Config, len(list))
	for i, c := range list {
		out[i] = export.Config(c)
	}
	return out, nil
}

// ReadConfigsFile reads a configs file, choosing the format by extension.
func ReadConfigsFile(path string) ([]export.Config, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer file.Close()
	return ReadConfigs(file, f)
}
