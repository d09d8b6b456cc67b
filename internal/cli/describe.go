package cli

import (
	"context"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/artwork/pkg/io"
	"github.com/matzehuels/artwork/pkg/pipeline"
)

// describeCommand loads a description and prints the workspace it builds,
// with every default and derived value filled in.
func (c *CLI) describeCommand() *cobra.Command {
	var output, inputFormat string

	cmd := &cobra.Command{
		Use:   "describe <description>",
		Short: "Print the normalized JSON of a description",
		Long: `Load a description, build the workspace and print its structure as JSON.
Method defaults are merged into every shape's props, so the output shows
exactly what render will draw. Use - to read the description from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDescribe(cmd.Context(), args[0], inputFormat, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", pipeName, "output file")
	cmd.Flags().StringVar(&inputFormat, "input-format", "json", "stdin description format: json, toml or yaml")
	return cmd
}

func (c *CLI) runDescribe(ctx context.Context, input, inputFormat, output string) error {
	desc, err := readDescription(input, inputFormat)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	defer runner.Close()

	ws, err := runner.Load(ctx, desc, pipeline.Options{Source: input})
	if err != nil {
		return err
	}
	if output == pipeName {
		return pkgio.WriteJSON(ws, stdout)
	}
	if err := pkgio.ExportJSON(ws, output); err != nil {
		return err
	}
	printSuccess("Described %s", input)
	printKeyValue("Output", output)
	return nil
}
