package app

import (
	"fmt"
	"strconv"

	"github.com/blackwell-systems/pathnotes/internal/hierarchy"
	"github.com/blackwell-systems/pathnotes/internal/output"
	"github.com/spf13/cobra"
)

var (
	searchLimit  int
	searchDevice string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Fuzzy search stored paths",
	Long: `Rank every stored path against the query. Each query character must
appear in order in the path; matches right after a separator or next to
the previous match rank higher. With no query all paths are listed.

Examples:
  pathnotes search docs
  pathnotes search usjd --limit 5
  pathnotes search proj --device desktop`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

var childrenDevice string

var childrenCmd = &cobra.Command{
	Use:   "children <path>",
	Short: "List the direct children of a stored path",
	Args:  cobra.ExactArgs(1),
	RunE:  runChildren,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum results (default: search.limit from config, 0 = all)")
	searchCmd.Flags().StringVar(&searchDevice, "device", "", "Only show paths stored under this device")
	childrenCmd.Flags().StringVar(&childrenDevice, "device", "", "Device to look under (default: current device)")
	rootCmd.AddCommand(searchCmd, childrenCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	ctx := cmd.Context()
	root, err := s.root(ctx)
	if err != nil {
		return err
	}
	entries, err := s.svc.Search(ctx, root, query)
	if err != nil {
		return err
	}

	if searchDevice != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Device == searchDevice {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	limit := searchLimit
	if limit <= 0 {
		limit = s.cfg.Search.Limit
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		if entries == nil {
			entries = []hierarchy.Entry{}
		}
		return writeJSON(w, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, output.StyleMuted.Render("No matching paths."))
		return nil
	}

	tbl := output.NewTable("Score", "Device", "Path")
	tbl.SetMaxWidth(s.cfg.Output.Width)
	for _, e := range entries {
		tbl.AddRow(strconv.Itoa(e.Score), e.Device, e.Path)
	}
	tbl.Fprint(w)
	return nil
}

func runChildren(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	device, _, err := s.device(ctx, childrenDevice)
	if err != nil {
		return err
	}
	note, err := s.svc.Lookup(ctx, device, args[0])
	if err != nil {
		return err
	}
	children, err := s.svc.Children(ctx, note)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		if children == nil {
			children = []hierarchy.Child{}
		}
		return writeJSON(w, children)
	}

	fmt.Fprintln(w, output.Section(note.Path, s.cfg.Output.Width))
	if len(children) == 0 {
		fmt.Fprintln(w, output.StyleMuted.Render("No child paths."))
		return nil
	}
	for _, c := range children {
		fmt.Fprintf(w, "%s  %s\n", output.StyleBold.Render(c.Label), output.StyleMuted.Render(c.Path))
	}
	return nil
}
