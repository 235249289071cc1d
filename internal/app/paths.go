package app

import (
	"fmt"

	"github.com/blackwell-systems/pathnotes/internal/hierarchy"
	"github.com/blackwell-systems/pathnotes/internal/output"
	"github.com/blackwell-systems/pathnotes/internal/pathkit"
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <path>...",
	Short: "Print the canonical form of paths",
	Long: `Normalize each argument to its canonical form: forward slashes, no
trailing separator, no file:// scheme, and drive letters without the
leading slash that file URLs add.

Examples:
  pathnotes normalize 'C:\Users\john\'
  pathnotes normalize file:///home/john/ ./notes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNormalize,
}

var prefixesCmd = &cobra.Command{
	Use:   "prefixes <path>",
	Short: "List the ancestor chain of a path",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrefixes,
}

var urlCmd = &cobra.Command{
	Use:   "url <path>",
	Short: "Print the file:// URL for an absolute path",
	Args:  cobra.ExactArgs(1),
	RunE:  runURL,
}

func init() {
	rootCmd.AddCommand(normalizeCmd, prefixesCmd, urlCmd)
}

// normalizeRow is the JSON shape of one normalized argument.
type normalizeRow struct {
	Input    string `json:"input"`
	Path     string `json:"path"`
	Absolute bool   `json:"absolute"`
}

func runNormalize(cmd *cobra.Command, args []string) error {
	if _, _, err := loadConfig(cmd); err != nil {
		return err
	}

	rows := make([]normalizeRow, 0, len(args))
	for _, a := range args {
		np := pathkit.Normalize(a)
		rows = append(rows, normalizeRow{Input: a, Path: np.Path, Absolute: np.Absolute})
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, rows)
	}
	if len(rows) == 1 {
		fmt.Fprintln(w, rows[0].Path)
		return nil
	}

	tbl := output.NewTable("Input", "Absolute", "Path")
	for _, r := range rows {
		tbl.AddRow(r.Input, output.Bool(r.Absolute), r.Path)
	}
	tbl.Fprint(w)
	return nil
}

func runPrefixes(cmd *cobra.Command, args []string) error {
	if _, _, err := loadConfig(cmd); err != nil {
		return err
	}

	np := pathkit.Normalize(args[0])
	if np.Path == "" {
		return hierarchy.ErrInvalidPath
	}
	prefixes := pathkit.Prefixes(np.Path)

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, prefixes)
	}
	for _, p := range prefixes {
		fmt.Fprintln(w, p)
	}
	return nil
}

func runURL(cmd *cobra.Command, args []string) error {
	if _, _, err := loadConfig(cmd); err != nil {
		return err
	}

	np := pathkit.Normalize(args[0])
	if np.Path == "" || !np.Absolute {
		return fmt.Errorf("%q is not an absolute path", args[0])
	}
	url := pathkit.FileURL(np.Path)

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, map[string]string{"path": np.Path, "url": url})
	}
	fmt.Fprintln(w, url)
	return nil
}
