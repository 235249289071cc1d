package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"time"

	"github.com/blackwell-systems/pathnotes/internal/hierarchy"
	"github.com/blackwell-systems/pathnotes/internal/output"
	"github.com/blackwell-systems/pathnotes/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	watchFile     string
	watchInterval string
	watchDevice   string
	watchQuiet    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep stored paths in sync with a list file",
	Long: `Watch a plain-text file of paths, one per line, and store any new
paths whenever the file changes. Paths removed from the file are not
deleted. Runs in the foreground until interrupted.

Examples:
  pathnotes watch --file ~/paths.txt
  pathnotes watch --file ~/paths.txt --interval 1m`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchFile, "file", "", "List file to watch (required)")
	watchCmd.Flags().StringVar(&watchInterval, "interval", "30s", "Check interval as duration string (e.g. 10s, 5m)")
	watchCmd.Flags().StringVar(&watchDevice, "device", "", "Device to store under (default: current device)")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "Only print warnings")
	_ = watchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval, err := time.ParseDuration(watchInterval)
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", watchInterval, err)
	}
	if interval < time.Second {
		return fmt.Errorf("interval must be at least 1s, got %s", interval)
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals...)
	defer stop()

	device, name, err := s.device(ctx, watchDevice)
	if err != nil {
		return err
	}
	links, err := s.links(ctx, name)
	if err != nil {
		return err
	}

	sync := func(ctx context.Context, lines []string) (hierarchy.BulkResult, error) {
		return s.svc.BulkCreate(ctx, device, lines, links)
	}

	w := cmd.OutOrStdout()
	eventFn := func(e watcher.Event) {
		s.logger.Debug().Str("level", e.Level).Str("title", e.Title).Msg(e.Message)
		if watchQuiet && e.Level == "info" {
			return
		}
		style := output.StyleSuccess
		if e.Level != "info" {
			style = output.StyleWarning
		}
		fmt.Fprintf(w, "[%s] %s %s\n", e.Time.Format("15:04:05"), style.Render(e.Title+":"), e.Message)
	}

	if !watchQuiet {
		fmt.Fprintf(w, "Watching %s for %s (checking every %s)\n", watchFile, name, interval)
	}

	err = watcher.New(watchFile, interval, sync, eventFn).Run(ctx)
	if errors.Is(err, context.Canceled) {
		if !watchQuiet {
			fmt.Fprintln(w, "Stopped.")
		}
		return nil
	}
	return err
}
