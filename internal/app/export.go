package app

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/pathnotes/internal/export"
	"github.com/blackwell-systems/pathnotes/internal/output"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all stored paths to a YAML file",
	Long: `Write every device and its stored paths to a YAML document. With
--out the file is replaced atomically; without it the YAML goes to stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importIn string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Re-create paths from a YAML export",
	Long: `Read a YAML document written by 'pathnotes export' and store every
path under its device. Devices are created as needed and paths that are
already stored are left alone.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write to this file instead of stdout")
	importCmd.Flags().StringVar(&importIn, "in", "", "YAML export to read (required)")
	_ = importCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	root, err := s.root(ctx)
	if err != nil {
		return err
	}
	doc, err := export.Build(ctx, s.svc, root, time.Now())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if exportOut == "" {
		return export.Encode(w, doc)
	}
	if err := export.WriteFile(exportOut, doc); err != nil {
		return err
	}
	s.logger.Debug().Str("file", exportOut).Int("paths", doc.Count()).Msg("export written")

	if flagJSON {
		return writeJSON(w, map[string]any{"file": exportOut, "devices": len(doc.Devices), "paths": doc.Count()})
	}
	fmt.Fprintf(w, "Exported %s from %s to %s\n",
		output.Count("path", doc.Count()), output.Count("device", len(doc.Devices)), exportOut)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	doc, err := export.Load(importIn)
	if err != nil {
		return fmt.Errorf("reading %s: %w", importIn, err)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	root, err := s.root(ctx)
	if err != nil {
		return err
	}
	res, err := export.Import(ctx, s.svc, root, doc, s.links)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, res)
	}
	fmt.Fprintln(w, output.StyleSuccess.Render("Imported "+output.Count("path", res.Created)))
	if res.Skipped > 0 {
		fmt.Fprintln(w, output.StyleWarning.Render("Skipped "+output.Count("entry", res.Skipped)))
	}
	return nil
}
