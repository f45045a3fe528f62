package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"flowgen/internal/config"
	"flowgen/internal/flow"
	"flowgen/internal/parser"
	"flowgen/internal/stmt"
	"flowgen/internal/store"
)

// genCmd represents the flowgen gen command
var genCmd = &cobra.Command{
	Use:   "gen <file.cs> [method]",
	Short: "Generate a control-flow diagram for a C# file",
	Long: `Generate a Mermaid control-flow diagram for a C# source file.

With only a file argument, the conventional entry method and up to 10 UI
event handlers are diagrammed, each as its own subgraph. With a method
argument, only that exact method is diagrammed.

The diagram is written to a sibling file derived from the input path
(<file>.flow.md by default). A file without a class declaration, or a
method name that does not exist, produces a one-node placeholder diagram
rather than an error; only an unreadable or unparsable file fails the run.

Examples:
  flowgen gen Checkout.aspx.cs
  flowgen gen Checkout.aspx.cs Submit_Click
  flowgen gen Checkout.aspx.cs -o docs/checkout-flow.md
  flowgen gen Checkout.aspx.cs --stdout`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGen,
}

var (
	genOutput    string // -o/--output file path
	genStdout    bool   // --stdout instead of writing a file
	genNoHistory bool   // --no-history skips run recording
)

func init() {
	rootCmd.AddCommand(genCmd)

	genCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output file path (default: <input>"+config.DefaultConfig().Output.Suffix+")")
	genCmd.Flags().BoolVar(&genStdout, "stdout", false, "Print the diagram to stdout instead of writing a file")
	genCmd.Flags().BoolVar(&genNoHistory, "no-history", false, "Do not record this run in the history store")
}

func runGen(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]
	method := ""
	if len(args) > 1 {
		method = args[1]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := parser.NewParser()
	defer p.Close()

	result, err := p.ParseFile(sourcePath)
	if err != nil {
		return err
	}
	defer result.Close()

	if result.HasErrors() {
		slog.Warn("source contains syntax errors, diagram may be incomplete", "file", sourcePath)
	}

	class := stmt.NewLowerer(result).LowerFile()
	if class == nil {
		slog.Debug("no class declaration found", "file", sourcePath)
	}

	gen := flow.NewGenerator(flow.Options{
		EntryMethod:     cfg.Flow.EntryMethod,
		HandlerSuffixes: cfg.Flow.HandlerSuffixes,
		Direction:       cfg.Output.Direction,
	})
	diagramText := gen.Generate(class, method)

	slog.Debug("diagram generated",
		"file", sourcePath,
		"nodes", gen.NodeCount(),
		"edges", gen.EdgeCount(),
	)

	if genStdout {
		fmt.Fprint(cmd.OutOrStdout(), diagramText)
	} else {
		outPath := genOutput
		if outPath == "" {
			outPath = sourcePath + cfg.Output.Suffix
		}
		if err := os.WriteFile(outPath, []byte(diagramText), 0644); err != nil {
			return fmt.Errorf("writing diagram: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d nodes, %d edges)\n", outPath, gen.NodeCount(), gen.EdgeCount())
	}

	if !genNoHistory && !cfg.History.Disabled {
		recordRun(cfg, class, sourcePath, method, diagramText, gen)
	}
	return nil
}

// recordRun stores the run in the history database. History is best-effort:
// failures are logged, never returned, and the store is only used when a
// .flowgen directory already exists.
func recordRun(cfg *config.Config, class *stmt.Class, sourcePath, method, diagramText string, gen *flow.Generator) {
	configDir, err := config.FindConfigDir(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			slog.Debug("no .flowgen directory, skipping history")
		} else {
			slog.Warn("history unavailable", "error", err)
		}
		return
	}

	s, err := store.Open(configDir)
	if err != nil {
		slog.Warn("failed to open history store", "error", err)
		return
	}
	defer s.Close()

	className := ""
	if class != nil {
		className = class.Name
	}
	if _, err := s.RecordRun(store.Run{
		SourcePath:   sourcePath,
		MethodFilter: method,
		ClassName:    className,
		NodeCount:    gen.NodeCount(),
		EdgeCount:    gen.EdgeCount(),
		Diagram:      diagramText,
	}); err != nil {
		slog.Warn("failed to record run", "error", err)
	}
}
