package app

import (
	"github.com/blackwell-systems/pathnotes/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server",
	Long: `Start a Model Context Protocol stdio server. The server exposes:

  normalize_path  Canonical form of a path and whether it is absolute
  path_prefixes   Ancestor chain of a path
  fuzzy_rank      Rank caller-supplied candidate paths against a query
  search_paths    Fuzzy search the stored paths across all devices
  child_paths     Direct children of a stored path

Example MCP configuration:
  {"mcpServers":{"pathnotes":{"command":"pathnotes","args":["mcp"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	// A missing device only limits child_paths to calls that name one.
	device, _ := s.deviceName(cmd.Context())

	srv := mcp.NewServer(s.svc, mcp.Options{
		RootName:    s.cfg.RootName,
		Device:      device,
		SearchLimit: s.cfg.Search.Limit,
	}, s.logger)
	return srv.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}
