// Command mmdraw renders a Mermaid-subset diagram into a terminal canvas.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/teleivo/mermaidterm"
	"github.com/teleivo/mermaidterm/config"
	"github.com/teleivo/mermaidterm/internal/diagnostics"
	"github.com/teleivo/mermaidterm/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "mmdraw [file]",
	Short: "Render a Mermaid flowchart or sequence diagram as a terminal drawing",
	Long: `mmdraw renders a Mermaid-subset diagram source into a terminal character
drawing: flowchart/graph diagrams with routed edges and nested subgraphs, and
sequence diagrams with lifelines and messages.

The input is read from the given file, or from stdin when the argument is
"-" or omitted while stdin is not a terminal.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDraw,
}

func init() {
	rootCmd.Flags().Bool("ascii", false, "restrict output to the ASCII glyph set")
	rootCmd.Flags().Bool("coords", false, "overlay grid/drawing coordinates for debugging")
	rootCmd.Flags().Bool("verbose", false, "enable verbose logging; never alters output")
	rootCmd.Flags().Int("box-padding", config.Default().BoxBorderPadding, "blank columns/rows inside a node box around its label")
	rootCmd.Flags().Int("padding-x", config.Default().PaddingBetweenX, "minimum blank columns between adjacent grid columns")
	rootCmd.Flags().Int("padding-y", config.Default().PaddingBetweenY, "minimum blank rows between adjacent grid rows")
	rootCmd.Flags().String("graph-direction", string(config.LeftToRight), "graph direction for graph diagrams: LR or TD")
	rootCmd.Flags().Bool("version", false, "print the version and exit")
}

func runDraw(cmd *cobra.Command, args []string) error {
	showVersion, _ := cmd.Flags().GetBool("version")
	if showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version.Version())
		return nil
	}

	input, err := readInput(args)
	if err != nil {
		return err
	}

	ascii, _ := cmd.Flags().GetBool("ascii")
	coords, _ := cmd.Flags().GetBool("coords")
	verbose, _ := cmd.Flags().GetBool("verbose")
	boxPadding, _ := cmd.Flags().GetInt("box-padding")
	paddingX, _ := cmd.Flags().GetInt("padding-x")
	paddingY, _ := cmd.Flags().GetInt("padding-y")
	graphDirection, _ := cmd.Flags().GetString("graph-direction")

	logger := diagnostics.New(verbose, os.Stderr)

	cfg, err := config.New(ascii, coords, verbose, boxPadding, paddingX, paddingY, config.GraphDirection(graphDirection))
	if err != nil {
		return err
	}

	logger.Debug("rendering diagram", "ascii", ascii, "coords", coords, "graphDirection", graphDirection)

	out, err := mermaidterm.Render(input, cfg)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// readInput resolves the diagram source from a positional file argument, the
// literal "-", or stdin. With no argument and an interactive stdin, usage
// exits with status 2 per mmdraw's contract.
func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if len(args) == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		rootCmd.Usage()
		os.Exit(2)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
