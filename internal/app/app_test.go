package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testConfig writes a config file pointing at a fresh database and
// returns its path.
func testConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf("db_path: %s\noutput:\n  color: false\n%s", filepath.Join(dir, "pathnotes.db"), extra)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

// resetFlags restores every flag variable to its default, since cobra
// keeps values between Execute calls on the same command tree.
func resetFlags() {
	flagNoColor, flagJSON, flagVerbose, flagConfig = false, false, false, ""
	createDevice = ""
	bulkFile, bulkDevice = "", ""
	searchLimit, searchDevice = 0, ""
	childrenDevice = ""
	deleteYes, deleteDevice = false, ""
	exportOut, importIn = "", ""
	scanDepth, scanGitOnly, scanHidden, scanDevice, scanDryRun = 1, false, false, "", false
	watchFile, watchInterval, watchDevice, watchQuiet = "", "30s", "", false
}

// runCLI executes the command tree with args against cfgPath and returns
// what was written to stdout.
func runCLI(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--config", cfgPath))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// mustRun is runCLI that fails the test on error.
func mustRun(t *testing.T, cfgPath, stdin string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, cfgPath, stdin, args...)
	require.NoError(t, err, "pathnotes %s", strings.Join(args, " "))
	return out
}

// decodeJSON unmarshals command output into v.
func decodeJSON(t *testing.T, out string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(out), v), "output: %s", out)
}
