package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/artwork/pkg/compilers"
	"github.com/matzehuels/artwork/pkg/shape"
)

// methodInfo is the JSON form of a registered method.
type methodInfo struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Defaults    shape.Props `json:"defaults"`
}

// methodsCommand creates the methods command.
func (c *CLI) methodsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "methods",
		Short: "List the shape methods descriptions can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			methods := compilers.Registry().Methods()
			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(methodInfos(methods))
			}
			fmt.Fprintln(stdout, methodsTable(methods))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print methods as JSON")
	return cmd
}

func methodInfos(methods []*shape.Method) []methodInfo {
	out := make([]methodInfo, len(methods))
	for i, m := range methods {
		out[i] = methodInfo{Name: m.Name, Description: m.Description, Defaults: m.Defaults}
	}
	return out
}

// methodsTable renders methods as a table of name, description and defaults.
func methodsTable(methods []*shape.Method) string {
	rows := make([][]string, 0, len(methods))
	for _, m := range methods {
		rows = append(rows, []string{m.Name, m.Description, formatDefaults(m.Defaults)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Method", "Description", "Defaults").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 2:
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// formatDefaults renders props as sorted key=value pairs.
func formatDefaults(p shape.Props) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		if s, ok := p[k].(string); ok {
			parts[i] = fmt.Sprintf("%s=%q", k, s)
			continue
		}
		parts[i] = fmt.Sprintf("%s=%v", k, p[k])
	}
	return strings.Join(parts, " ")
}
