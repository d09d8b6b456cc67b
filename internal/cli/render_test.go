package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/artwork/pkg/export"
	"github.com/matzehuels/artwork/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces trimmed", " svg , png ", []string{"svg", "png"}},
		{"empty parts dropped", "svg,,pdf,", []string{"svg", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid raster", []string{"png", "jpeg", "webp"}, false},
		{"valid all", []string{"svg", "pdf", "png", "json"}, false},
		{"invalid format", []string{"invalid"}, true},
		{"mixed valid invalid", []string{"svg", "invalid"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input string
		want          string
	}{
		{"", "poster.yaml", "poster"},
		{"", "dir/poster.json", "dir/poster"},
		{"", "-", appName},
		{"out.svg", "poster.yaml", "out"},
		{"out/poster.pdf", "poster.yaml", "out/poster"},
		{"out.backup", "poster.yaml", "out.backup"},
		{"render", "poster.yaml", "render"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		format export.Format
		i, n   int
		array  bool
		want   string
	}{
		{export.SVG, 0, 1, false, "out.svg"},
		{export.PNG, 0, 1, true, "out-1.png"},
		{export.JPEG, 1, 3, true, "out-2.jpg"},
		{export.PDF, 0, 1, false, "out.pdf"},
	}

	for _, tt := range tests {
		if got := outputPath("out", tt.format, tt.i, tt.n, tt.array); got != tt.want {
			t.Errorf("outputPath(%v, %d, %d, %v) = %q, want %q", tt.format, tt.i, tt.n, tt.array, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	result := &pipeline.Result{
		Artifacts: map[string]export.Result{
			"svg": export.Many([]export.Output{
				{MIME: "image/svg+xml", Type: export.String, Text: "<svg>1</svg>"},
				{MIME: "image/svg+xml", Type: export.String, Text: "<svg>2</svg>"},
			}),
			"json": export.Single(export.Output{MIME: "application/json", Type: export.String, Text: "{}"}, false),
		},
		Stats: pipeline.Stats{Artboards: 2, Outputs: 3},
	}

	err := writeArtifacts(artifactWriteParams{
		result:  result,
		formats: []export.Format{export.SVG, export.JSON},
		input:   "poster.yaml",
		output:  filepath.Join(dir, "nested", "poster"),
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	want := map[string]string{
		"poster-1.svg": "<svg>1</svg>",
		"poster-2.svg": "<svg>2</svg>",
		"poster.json":  "{}",
	}
	for name, content := range want {
		data, err := os.ReadFile(filepath.Join(dir, "nested", name))
		if err != nil {
			t.Errorf("read %s: %v", name, err)
			continue
		}
		if string(data) != content {
			t.Errorf("%s = %q, want %q", name, data, content)
		}
	}
}

func TestWriteArtifactsStdoutNeedsOneOutput(t *testing.T) {
	result := &pipeline.Result{
		Artifacts: map[string]export.Result{
			"svg": export.Many([]export.Output{{Type: export.String}, {Type: export.String}}),
		},
		Stats: pipeline.Stats{Outputs: 2},
	}
	err := writeArtifacts(artifactWriteParams{
		result:  result,
		formats: []export.Format{export.SVG},
		input:   "poster.yaml",
		output:  pipeName,
	})
	if err == nil {
		t.Error("writeArtifacts() to stdout with 2 outputs should fail")
	}
}

func TestReadDescription(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "poster.yaml")
	content := "artboards:\n  - width: 100\n    height: 50\n    elements:\n      - method: circle\n        props: {r: 10}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	desc, err := readDescription(path, "")
	if err != nil {
		t.Fatalf("readDescription() error: %v", err)
	}
	if len(desc.Artboards) != 1 || len(desc.Artboards[0].Elements) != 1 {
		t.Errorf("readDescription() = %+v, want 1 artboard with 1 element", desc)
	}

	if _, err := readDescription(filepath.Join(dir, "missing.json"), ""); err == nil {
		t.Error("readDescription() of a missing file should fail")
	}
}

func TestDescribeWritesNormalizedJSON(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	in := filepath.Join(dir, "poster.yaml")
	content := "artboards:\n  - width: 100\n    height: 50\n    elements:\n      - method: circle\n        props: {r: 10}\n"
	if err := os.WriteFile(in, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "poster.json")

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"describe", in, "-o", out})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("describe: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"circle"`, `"fill"`, `"r": 10`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("describe output missing %s:\n%s", want, data)
		}
	}
}
