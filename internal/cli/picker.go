package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	pkgio "github.com/matzehuels/artwork/pkg/io"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// Candidates
// =============================================================================

// descriptionFile is a description found in a directory.
type descriptionFile struct {
	Path     string
	Format   pkgio.Format
	Size     int64
	Modified time.Time
}

// findDescriptions lists the description files in dir, newest first.
func findDescriptions(dir string) ([]descriptionFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []descriptionFile
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		f, err := pkgio.FormatFor(e.Name())
		if err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, descriptionFile{
			Path:     filepath.Join(dir, e.Name()),
			Format:   f,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})
	return files, nil
}

// pickDescription asks the user to choose a description from dir.
func pickDescription(dir string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no description given (pass a file or \"-\" for stdin)")
	}
	files, err := findDescriptions(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no description files (.json, .toml, .yaml) in %s", dir)
	}

	final, err := tea.NewProgram(NewPickerModel(files)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(PickerModel)
	if !ok || m.Selected == nil {
		return "", fmt.Errorf("no description selected")
	}
	return m.Selected.Path, nil
}

// =============================================================================
// PickerModel - Interactive description selection
// =============================================================================

// PickerModel is the bubbletea model for interactive description selection.
type PickerModel struct {
	Files    []descriptionFile
	Cursor   int
	Selected *descriptionFile
	Height   int
	Offset   int
}

// NewPickerModel creates a new picker model.
func NewPickerModel(files []descriptionFile) PickerModel {
	return PickerModel{
		Files:  files,
		Height: 15,
	}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Files); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		case "enter":
			if len(m.Files) == 0 {
				return m, tea.Quit
			}
			f := m.Files[m.Cursor]
			m.Selected = &f
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Description"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Files))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := m.Files[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, filepath.Base(f.Path), string(f.Format), formatSize(f.Size), formatRelativeTime(f.Modified)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "File", "Format", "Size", "Modified").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			isCurrent := m.Offset+row == m.Cursor
			base := lipgloss.NewStyle()
			if col >= 2 {
				base = base.Foreground(colorDim)
			}
			if isCurrent {
				if col < 2 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorGray).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Files))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

func formatSize(n int64) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	}
}
