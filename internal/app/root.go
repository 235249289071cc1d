// Package app contains the Cobra command tree for pathnotes.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "pathnotes",
	Short: "Keep file paths as notes, organized per device",
	Long: `pathnotes stores file paths as a hierarchy of notes: one root note,
one note per device, and one note per path and every ancestor of that path.
Paths in POSIX, Windows, UNC, and file:// syntax are normalized to a single
canonical form before they are stored or compared.

Run 'pathnotes' with no arguments to see the available commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "pathnotes", appVersion)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Use a subcommand:")
		fmt.Fprintln(w, "  normalize  Print the canonical form of paths")
		fmt.Fprintln(w, "  prefixes   List the ancestor chain of a path")
		fmt.Fprintln(w, "  url        Print the file:// URL for a path")
		fmt.Fprintln(w, "  device     Show or change the current device")
		fmt.Fprintln(w, "  create     Store a path and its ancestors")
		fmt.Fprintln(w, "  bulk       Store many paths, one per line")
		fmt.Fprintln(w, "  scan       Store the directories found below local folders")
		fmt.Fprintln(w, "  watch      Keep stored paths in sync with a list file")
		fmt.Fprintln(w, "  search     Fuzzy search stored paths")
		fmt.Fprintln(w, "  children   List the direct children of a stored path")
		fmt.Fprintln(w, "  delete     Remove a stored path and everything below it")
		fmt.Fprintln(w, "  export     Write all stored paths to a YAML file")
		fmt.Fprintln(w, "  import     Re-create paths from a YAML export")
		fmt.Fprintln(w, "  mcp        Run an MCP stdio server")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/pathnotes/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging on stderr")
}
