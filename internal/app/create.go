package app

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/blackwell-systems/pathnotes/internal/output"
	"github.com/spf13/cobra"
)

var createDevice string

var createCmd = &cobra.Command{
	Use:   "create <path>",
	Short: "Store a path and its ancestors",
	Long: `Normalize the path and store a note for it and for every ancestor
prefix under the current device. Existing notes are reused.

Examples:
  pathnotes create /Users/john/Documents
  pathnotes create 'D:\Projects\site' --device desktop`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

var (
	bulkFile   string
	bulkDevice string
)

var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Store many paths, one per line",
	Long: `Read paths from --file or stdin, one per line, and store each with its
ancestors. Blank lines are ignored. Relative paths are skipped and counted.

Examples:
  find ~/src -maxdepth 2 -type d | pathnotes bulk
  pathnotes bulk --file paths.txt`,
	Args: cobra.NoArgs,
	RunE: runBulk,
}

func init() {
	createCmd.Flags().StringVar(&createDevice, "device", "", "Device to store under (default: current device)")
	bulkCmd.Flags().StringVar(&bulkFile, "file", "", "Read paths from this file instead of stdin")
	bulkCmd.Flags().StringVar(&bulkDevice, "device", "", "Device to store under (default: current device)")
	rootCmd.AddCommand(createCmd, bulkCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	device, name, err := s.device(ctx, createDevice)
	if err != nil {
		return err
	}
	links, err := s.links(ctx, name)
	if err != nil {
		return err
	}

	path, err := s.svc.CreatePath(ctx, device, args[0], links)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, map[string]string{"path": path, "device": name})
	}
	fmt.Fprintln(w, output.StylePath.Render(path))
	return nil
}

func runBulk(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if bulkFile != "" {
		f, err := os.Open(bulkFile)
		if err != nil {
			return fmt.Errorf("opening %s: %w", bulkFile, err)
		}
		defer f.Close()
		in = f
	}
	lines, err := readLines(in)
	if err != nil {
		return fmt.Errorf("reading paths: %w", err)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	device, name, err := s.device(ctx, bulkDevice)
	if err != nil {
		return err
	}
	links, err := s.links(ctx, name)
	if err != nil {
		return err
	}

	res, err := s.svc.BulkCreate(ctx, device, lines, links)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, res)
	}
	fmt.Fprintf(w, "%s on %s\n", output.StyleSuccess.Render("Created "+output.Count("path", res.Created)), name)
	if res.Skipped > 0 {
		fmt.Fprintln(w, output.StyleWarning.Render("Skipped "+output.Count("line", res.Skipped)+" (not absolute)"))
	}
	return nil
}

// readLines returns every line of r without trailing newlines.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
