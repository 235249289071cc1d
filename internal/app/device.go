package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/pathnotes/internal/hierarchy"
	"github.com/blackwell-systems/pathnotes/internal/output"
	"github.com/spf13/cobra"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Show or change the current device",
	Long: `Paths are stored per device. The current device comes from the
'device' config key when set, otherwise from the name saved with
'pathnotes device set'.

Examples:
  pathnotes device
  pathnotes device set laptop
  pathnotes device list
  pathnotes device links off`,
	Args: cobra.NoArgs,
	RunE: runDeviceShow,
}

var deviceSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Save the device name for this machine",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeviceSet,
}

var deviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every device with its path count",
	Args:  cobra.NoArgs,
	RunE:  runDeviceList,
}

var deviceLinksCmd = &cobra.Command{
	Use:       "links <on|off>",
	Short:     "Turn file:// links on or off for new paths on the current device",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runDeviceLinks,
}

func init() {
	deviceCmd.AddCommand(deviceSetCmd, deviceListCmd, deviceLinksCmd)
	rootCmd.AddCommand(deviceCmd)
}

// deviceInfo is the JSON shape of one device.
type deviceInfo struct {
	Name    string `json:"name"`
	Current bool   `json:"current"`
	Links   bool   `json:"links"`
	Paths   int    `json:"paths"`
}

func runDeviceShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	name, err := s.deviceName(ctx)
	if err != nil {
		return err
	}
	links, err := s.links(ctx, name)
	if err != nil {
		return err
	}
	device, _, err := s.device(ctx, name)
	if err != nil {
		return err
	}
	idx, err := s.svc.BuildIndex(ctx, device)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, deviceInfo{Name: name, Current: true, Links: links, Paths: len(idx)})
	}
	fmt.Fprintln(w, output.KeyValue("Device", output.StyleBold.Render(name)))
	fmt.Fprintln(w, output.KeyValue("Links", output.Bool(links)))
	fmt.Fprintln(w, output.KeyValue("Stored", output.Count("path", len(idx))))
	if s.cfg.Device != "" {
		fmt.Fprintln(w, output.StyleMuted.Render("(set by config)"))
	}
	return nil
}

func runDeviceSet(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	name := strings.TrimSpace(args[0])
	if name == "" {
		return hierarchy.ErrNoDevice
	}

	ctx := cmd.Context()
	if err := s.db.SetDeviceName(ctx, name); err != nil {
		return fmt.Errorf("saving device name: %w", err)
	}
	if _, _, err := s.device(ctx, name); err != nil {
		return err
	}
	s.logger.Info().Str("device", name).Msg("device name saved")

	fmt.Fprintln(cmd.OutOrStdout(), output.StyleSuccess.Render("Device set to "+name))
	return nil
}

func runDeviceList(cmd *cobra.Command, args []string) error {
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
	devices, err := s.svc.Devices(ctx, root)
	if err != nil {
		return err
	}
	entries, err := s.svc.Entries(ctx, root)
	if err != nil {
		return err
	}
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Device]++
	}

	// A missing current device is fine here; nothing is marked.
	current, _ := s.deviceName(ctx)

	infos := make([]deviceInfo, 0, len(devices))
	for _, d := range devices {
		name := strings.TrimSpace(d.Text)
		links, err := s.links(ctx, name)
		if err != nil {
			return err
		}
		infos = append(infos, deviceInfo{
			Name:    name,
			Current: name == current,
			Links:   links,
			Paths:   counts[name],
		})
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, infos)
	}
	if len(infos) == 0 {
		fmt.Fprintln(w, output.StyleMuted.Render("No devices yet."))
		return nil
	}

	tbl := output.NewTable("Device", "Current", "Links", "Paths")
	for _, d := range infos {
		tbl.AddRow(d.Name, output.Bool(d.Current), output.Bool(d.Links), fmt.Sprintf("%d", d.Paths))
	}
	tbl.Fprint(w)
	return nil
}

func runDeviceLinks(cmd *cobra.Command, args []string) error {
	var enabled bool
	switch strings.ToLower(args[0]) {
	case "on":
		enabled = true
	case "off":
	default:
		return fmt.Errorf("expected on or off, got %q", args[0])
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	name, err := s.deviceName(ctx)
	if err != nil {
		return err
	}
	if err := s.db.SetDeviceLinks(ctx, name, enabled); err != nil {
		return fmt.Errorf("saving link setting: %w", err)
	}

	state := "off"
	if enabled {
		state = "on"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Links %s for %s\n", state, name)
	return nil
}
