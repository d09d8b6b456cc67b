package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/artwork/pkg/errors"
)

// Description is a declarative workspace.
type Description struct {
	Document  string           `json:"document,omitempty" toml:"document" yaml:"document,omitempty"`
	Artboards []Artboard       `json:"artboards" toml:"artboards" yaml:"artboards"`
	Configs   []map[string]any `json:"configs,omitempty" toml:"configs" yaml:"configs,omitempty"`

	// dir resolves Document when the description was read from a file.
	dir string
}

// Artboard describes one artboard. Width and Height are ignored for
// document-derived workspaces.
type Artboard struct {
	Width    float64   `json:"width" toml:"width" yaml:"width"`
	Height   float64   `json:"height" toml:"height" yaml:"height"`
	Elements []Element `json:"elements" toml:"elements" yaml:"elements"`
}

// Element describes one placed shape.
type Element struct {
	Method  any            `json:"method" toml:"method" yaml:"method"`
	Props   map[string]any `json:"props,omitempty" toml:"props" yaml:"props,omitempty"`
	X       float64        `json:"x,omitempty" toml:"x" yaml:"x,omitempty"`
	Y       float64        `json:"y,omitempty" toml:"y" yaml:"y,omitempty"`
	Scale   float64        `json:"scale,omitempty" toml:"scale" yaml:"scale,omitempty"`
	Anchor  string         `json:"anchor,omitempty" toml:"anchor" yaml:"anchor,omitempty"`
	Visible *bool          `json:"visible,omitempty" toml:"visible" yaml:"visible,omitempty"`
	Meta    map[string]any `json:"meta,omitempty" toml:"meta" yaml:"meta,omitempty"`
}

// MethodName returns the method name from either the string or the object
// form.
func (e Element) MethodName() (string, error) {
	switch m := e.Method.(type) {
	case string:
		if m != "" {
			return m, nil
		}
	case map[string]any:
		if name, ok := m["name"].(string); ok && name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("element needs a method name")
}

// Format is a description encoding.
type Format string

const (
	JSON Format = "json"
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupportedFormat, "unknown description format %q", filepath.Ext(path))
}

// Read decodes a description from r.
func Read(r io.Reader, f Format) (*Description, error) {
	var d Description
	var err error
	switch f {
	case JSON:
		err = json.NewDecoder(r).Decode(&d)
	case TOML:
		_, err = toml.NewDecoder(r).Decode(&d)
	case YAML:
		err = yaml.NewDecoder(r).Decode(&d)
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedFormat, "unknown description format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s description", f)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ReadJSON decodes a JSON description from r.
func ReadJSON(r io.Reader) (*Description, error) {
	return Read(r, JSON)
}

// ReadFile reads a description file, choosing the format by extension.
func ReadFile(path string) (*Description, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer file.Close()

	d, err := Read(file, f)
	if err != nil {
		return nil, err
	}
	d.dir = filepath.Dir(path)
	return d, nil
}

// Validate checks the structure without resolving methods.
func (d *Description) Validate() error {
	if d.Document == "" && len(d.Artboards) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "description has no artboards")
	}
	for i, a := range d.Artboards {
		if d.Document == "" {
			if err := errors.ValidateSize(a.Width, a.Height); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "artboard %d", i)
			}
		}
		for j, e := range a.Elements {
			if _, err := e.MethodName(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "artboard %d element %d", i, j)
			}
			if err := errors.ValidateScale(e.Scale); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "artboard %d element %d", i, j)
			}
		}
	}
	return nil
}

// DocumentPath returns Document resolved against the description's
// directory.
func (d *Description) DocumentPath() string {
	if d.Document == "" || filepath.IsAbs(d.Document) || d.dir == "" {
		return d.Document
	}
	return filepath.Join(d.dir, d.Document)
}
