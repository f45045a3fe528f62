// Package cmd contains all CLI commands for flowgen.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"flowgen/internal/config"
)

var (
	// Version is the current version of flowgen
	Version = "0.1.0"

	// Global flags
	verbose    bool
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flowgen",
	Short: "Control-flow diagram generator for C# source files",
	Long: `flowgen parses C# source files and generates Mermaid flowchart diagrams
of their control flow.

It walks each method body statement by statement: conditionals become
decision diamonds with Yes/No branches, loops get a back-edge and an exit,
switches fan out per case, and try/catch/finally shows dashed exceptional
transitions. Heuristically detected service calls get a distinguished
double-bordered shape.

Without a method argument, flowgen diagrams the conventional entry method
(Page_Load) plus up to 10 UI event handlers (_Click, _Changed, and friends),
which fits ASP.NET WebForms code-behind files.

Examples:
  flowgen gen Checkout.aspx.cs                # entry method + event handlers
  flowgen gen Checkout.aspx.cs Submit_Click   # one specific method
  flowgen gen Checkout.aspx.cs --stdout       # print instead of writing a file
  flowgen history                             # list past generation runs
  flowgen report controls.json                # render extracted markup records
  flowgen mcp                                 # serve the MCP tool over stdio

See 'flowgen <command> --help' for command-specific options.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: .flowgen/config.yaml)")
}

// loadConfig loads configuration from the --config flag path or by walking
// up from the working directory.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load(".")
}
