package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/tabspace/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all workspaces as a backup",
		Long:  "Export every workspace in the extension's backup format. Writes JSON to stdout unless -o is set; --format yaml writes YAML.",
		Args:  cobra.NoArgs,
		Run:   runExport,
	}

	cmd.Flags().StringP("output", "o", "", "Write the backup to a file")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	outPath, _ := cmd.Flags().GetString("output")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	b, err := store.ExportAll(cmd.Context(), s, store.BackupVersion, time.Now())
	if err != nil {
		exitErr("export", err)
	}

	var data []byte
	if formatFlag == "yaml" {
		data, err = yaml.Marshal(b)
	} else {
		data, err = json.MarshalIndent(b, "", "  ")
	}
	if err != nil {
		exitErr("encode backup", err)
	}

	if outPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o600); err != nil {
		exitErr("write backup", err)
	}
	printOK(cmd, map[string]any{"path": outPath, "workspaces": len(b.Workspaces)})
}
