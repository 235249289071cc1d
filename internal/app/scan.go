package app

import (
	"fmt"

	"github.com/blackwell-systems/pathnotes/internal/output"
	"github.com/blackwell-systems/pathnotes/internal/scanner"
	"github.com/spf13/cobra"
)

var (
	scanDepth   int
	scanGitOnly bool
	scanHidden  bool
	scanDevice  string
	scanDryRun  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>...",
	Short: "Store the directories found below local folders",
	Long: `Walk each directory and store every subdirectory found, up to --depth
levels deep, as a path note on the current device. Hidden directories are
skipped unless --hidden is given.

Examples:
  pathnotes scan ~/src --git-only --depth 3
  pathnotes scan ~/Documents --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanDepth, "depth", 1, "How many levels below each directory to descend")
	scanCmd.Flags().BoolVar(&scanGitOnly, "git-only", false, "Only store git repositories")
	scanCmd.Flags().BoolVar(&scanHidden, "hidden", false, "Include hidden directories")
	scanCmd.Flags().StringVar(&scanDevice, "device", "", "Device to store under (default: current device)")
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "List what would be stored without storing it")
	rootCmd.AddCommand(scanCmd)
}

// scanReport is the JSON shape of a scan run.
type scanReport struct {
	Dirs    []scanner.Dir `json:"dirs"`
	Created int           `json:"created"`
	DryRun  bool          `json:"dry_run"`
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dirs, err := scanner.Discover(ctx, args, scanner.Options{
		MaxDepth:      scanDepth,
		GitOnly:       scanGitOnly,
		IncludeHidden: scanHidden,
	})
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}
	if dirs == nil {
		dirs = []scanner.Dir{}
	}

	report := scanReport{Dirs: dirs, DryRun: scanDryRun}
	w := cmd.OutOrStdout()

	if scanDryRun {
		if _, _, err := loadConfig(cmd); err != nil {
			return err
		}
		if flagJSON {
			return writeJSON(w, report)
		}
		for _, d := range dirs {
			fmt.Fprintln(w, d.Path)
		}
		fmt.Fprintln(w, output.StyleMuted.Render(output.Count("directory", len(dirs))+" found (dry run)"))
		return nil
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	device, name, err := s.device(ctx, scanDevice)
	if err != nil {
		return err
	}
	links, err := s.links(ctx, name)
	if err != nil {
		return err
	}
	res, err := s.svc.BulkCreate(ctx, device, scanner.Paths(dirs), links)
	if err != nil {
		return err
	}
	report.Created = res.Created

	if flagJSON {
		return writeJSON(w, report)
	}
	fmt.Fprintf(w, "Found %s, %s on %s\n",
		output.Count("directory", len(dirs)),
		output.StyleSuccess.Render("created "+output.Count("path", res.Created)),
		name)
	return nil
}
