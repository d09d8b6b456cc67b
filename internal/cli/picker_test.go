package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/artwork/pkg/compilers"
	pkgio "github.com/matzehuels/artwork/pkg/io"
	"github.com/matzehuels/artwork/pkg/shape"
)

func TestFindDescriptions(t *testing.T) {
	dir := t.TempDir()
	files := map[string]time.Time{
		"old.json":    time.Now().Add(-48 * time.Hour),
		"new.yaml":    time.Now(),
		"mid.toml":    time.Now().Add(-time.Hour),
		"notes.txt":   time.Now(),
		".hidden.yml": time.Now(),
	}
	for name, mod := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := findDescriptions(dir)
	if err != nil {
		t.Fatalf("findDescriptions() error: %v", err)
	}

	want := []struct {
		name   string
		format pkgio.Format
	}{
		{"new.yaml", pkgio.YAML},
		{"mid.toml", pkgio.TOML},
		{"old.json", pkgio.JSON},
	}
	if len(got) != len(want) {
		t.Fatalf("findDescriptions() = %d files, want %d", len(got), len(want))
	}
	for i, w := range want {
		if filepath.Base(got[i].Path) != w.name || got[i].Format != w.format {
			t.Errorf("file[%d] = %s (%s), want %s (%s)", i, filepath.Base(got[i].Path), got[i].Format, w.name, w.format)
		}
	}
}

func TestPickerModelNavigation(t *testing.T) {
	files := []descriptionFile{
		{Path: "a.json", Format: pkgio.JSON},
		{Path: "b.yaml", Format: pkgio.YAML},
		{Path: "c.toml", Format: pkgio.TOML},
	}
	m := NewPickerModel(files)

	press := func(m PickerModel, key string) (PickerModel, tea.Cmd) {
		var msg tea.KeyMsg
		switch key {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		next, cmd := m.Update(msg)
		return next.(PickerModel), cmd
	}

	m, _ = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("Cursor after up at top = %d, want 0", m.Cursor)
	}
	m, _ = press(m, "down")
	m, _ = press(m, "j")
	m, _ = press(m, "down")
	if m.Cursor != 2 {
		t.Errorf("Cursor after 3 downs = %d, want 2", m.Cursor)
	}
	m, _ = press(m, "g")
	if m.Cursor != 0 {
		t.Errorf("Cursor after g = %d, want 0", m.Cursor)
	}
	m, _ = press(m, "G")
	if m.Cursor != 2 {
		t.Errorf("Cursor after G = %d, want 2", m.Cursor)
	}
	m, _ = press(m, "k")
	m, cmd := press(m, "enter")
	if m.Selected == nil || m.Selected.Path != "b.yaml" {
		t.Errorf("Selected = %v, want b.yaml", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestPickerModelQuit(t *testing.T) {
	m := NewPickerModel([]descriptionFile{{Path: "a.json", Format: pkgio.JSON}})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if next.(PickerModel).Selected != nil {
		t.Error("quit should not select a file")
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestPickerModelView(t *testing.T) {
	m := NewPickerModel([]descriptionFile{
		{Path: "dir/poster.yaml", Format: pkgio.YAML, Size: 2048, Modified: time.Now()},
	})
	view := m.View()
	for _, want := range []string{"Select Description", "poster.yaml", "yaml", "2.0 KB", "[1/1]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{1536, "1.5 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatDefaults(t *testing.T) {
	got := formatDefaults(shape.Props{"r": 50.0, "fill": "black", "dot": ""})
	want := `dot="" fill="black" r=50`
	if got != want {
		t.Errorf("formatDefaults() = %q, want %q", got, want)
	}
}

func TestMethodsTable(t *testing.T) {
	methods := compilers.Registry().Methods()
	out := methodsTable(methods)
	for _, m := range methods {
		if !strings.Contains(out, m.Name) {
			t.Errorf("methodsTable() missing method %q", m.Name)
		}
	}

	infos := methodInfos(methods)
	if len(infos) != len(methods) {
		t.Fatalf("methodInfos() = %d entries, want %d", len(infos), len(methods))
	}
	if infos[0].Name != methods[0].Name {
		t.Errorf("methodInfos()[0].Name = %q, want %q", infos[0].Name, methods[0].Name)
	}
}
