package app

import (
	"fmt"

	"github.com/blackwell-systems/pathnotes/internal/hierarchy"
	"github.com/blackwell-systems/pathnotes/internal/output"
	"github.com/blackwell-systems/pathnotes/internal/pathkit"
	"github.com/spf13/cobra"
)

var (
	deleteYes    bool
	deleteDevice string
)

var deleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Remove a stored path and everything below it",
	Long: `Show which notes deleting the path would remove: the path itself and
every stored path below it, deepest first. Nothing is removed unless --yes
is given.

Examples:
  pathnotes delete /Users/john
  pathnotes delete /Users/john --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "Actually delete instead of only showing the plan")
	deleteCmd.Flags().StringVar(&deleteDevice, "device", "", "Device to delete from (default: current device)")
	rootCmd.AddCommand(deleteCmd)
}

// deleteReport is the JSON shape of a delete run.
type deleteReport struct {
	Plan       *hierarchy.DeletePlan `json:"plan"`
	ParentPath string                `json:"parent_path,omitempty"`
	Deleted    bool                  `json:"deleted"`
	Removed    int                   `json:"removed"`
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	device, _, err := s.device(ctx, deleteDevice)
	if err != nil {
		return err
	}
	note, err := s.svc.Lookup(ctx, device, args[0])
	if err != nil {
		return err
	}
	plan, err := s.svc.PlanDelete(ctx, note)
	if err != nil {
		return err
	}

	report := deleteReport{Plan: plan}
	if plan.ParentNoteID != "" {
		report.ParentPath = pathkit.Parent(plan.Path)
	}
	if deleteYes {
		if report.Removed, err = s.svc.ExecuteDelete(ctx, plan); err != nil {
			return err
		}
		report.Deleted = true
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, report)
	}

	if !report.Deleted {
		fmt.Fprintf(w, "Deleting %s would remove it and %s below it.\n",
			output.StylePath.Render(plan.Path),
			output.Count("path", plan.DescendantCount))
		fmt.Fprintln(w, output.StyleMuted.Render("Re-run with --yes to delete."))
		return nil
	}

	fmt.Fprintln(w, output.StyleError.Render(fmt.Sprintf("Removed %s", output.Count("note", report.Removed))))
	if report.ParentPath != "" {
		fmt.Fprintf(w, "Parent: %s\n", output.StylePath.Render(report.ParentPath))
	}
	return nil
}
