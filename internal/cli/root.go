// Package cli implements the tabspace CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/tabspace/internal/config"
	"github.com/rcliao/tabspace/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
	wsFlag     string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:           "tabspace",
	Short:         "Workspaces of saved tab groups for your browser",
	Long:          "Manage saved tab groups and run the native-messaging host that moves tabs between live windows and saved groups.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $TABSPACE_DB or the config's db_path)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $XDG_CONFIG_HOME/tabspace/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json, yaml or text")
	RootCmd.PersistentFlags().StringVarP(&wsFlag, "workspace", "w", "", "Workspace id (default: the active workspace)")
}

// NativeHostArgs rewrites a browser launch (origin first, as the browser
// passes it) into the host command.
func NativeHostArgs(args []string) []string {
	if len(args) > 0 && strings.HasPrefix(args[0], "chrome-extension://") {
		return append([]string{"host"}, args...)
	}
	return args
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	return cfg
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return loadConfig().DBPath
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

// workspaceID returns the --workspace flag or the active workspace,
// creating the default workspace on first use.
func workspaceID(cmd *cobra.Command, repo store.Repository) string {
	if wsFlag != "" {
		return wsFlag
	}
	ws, err := store.EnsureDefault(cmd.Context(), repo, loadConfig().Workspace.DefaultName)
	if err != nil {
		exitErr("active workspace", err)
	}
	return ws.ID
}

// output writes v in the selected format. text falls back to JSON when the
// command has no text rendering.
func output(cmd *cobra.Command, v any, text func(w io.Writer)) {
	w := cmd.OutOrStdout()
	switch formatFlag {
	case "text":
		if text != nil {
			text(w)
			return
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			exitErr("encode yaml", err)
		}
		enc.Close()
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

func printOK(cmd *cobra.Command, fields map[string]any) {
	out := map[string]any{"ok": true}
	for k, v := range fields {
		out[k] = v
	}
	output(cmd, out, func(w io.Writer) { fmt.Fprintln(w, "ok") })
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
