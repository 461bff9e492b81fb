package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/tabspace/internal/browser"
	"github.com/rcliao/tabspace/internal/model"
	"github.com/rcliao/tabspace/internal/snapshot"
	"github.com/rcliao/tabspace/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "snapshot [windows.json]",
		Short: "Save a window list as a new workspace",
		Long: `Save a list of windows (the JSON the host reports for windows.mirror, from a
file or stdin) as a new workspace with one group per window.

--close-windows sets whether the host closes windows after a live snapshot;
with --remember the choice is stored for future snapshots.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runSnapshot,
	}

	cmd.Flags().Bool("close-windows", false, "Close captured windows after a live snapshot")
	cmd.Flags().Bool("remember", false, "Store --close-windows as the default")
	cmd.Flags().Bool("use", false, "Make the new workspace active")

	RootCmd.AddCommand(cmd)
}

func runSnapshot(cmd *cobra.Command, args []string) {
	closeWindows, _ := cmd.Flags().GetBool("close-windows")
	remember, _ := cmd.Flags().GetBool("remember")
	use, _ := cmd.Flags().GetBool("use")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()
	ctx := cmd.Context()

	if remember {
		if err := s.SetSetting(ctx, store.SettingSnapshotCloseWindows, strconv.FormatBool(closeWindows)); err != nil {
			exitErr("store setting", err)
		}
		if len(args) == 0 && !stdinPiped() {
			printOK(cmd, map[string]any{store.SettingSnapshotCloseWindows: closeWindows})
			return
		}
	}

	var data []byte
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		exitErr("read windows", err)
	}
	var windows []model.Window
	if err := json.Unmarshal(data, &windows); err != nil {
		exitErr("parse windows", err)
	}

	res, err := snapshot.Capture(ctx, browser.NewFake(windows...), s, snapshot.Options{})
	if err != nil {
		exitErr("snapshot", err)
	}
	if use {
		if err := store.SetActiveWorkspace(ctx, s, res.Workspace.ID); err != nil {
			exitErr("use workspace", err)
		}
	}

	output(cmd, res, func(w io.Writer) {
		fmt.Fprintf(w, "%s  %s (%d groups, %d tabs)\n", res.Workspace.ID, res.Workspace.Name, len(res.Workspace.Groups), res.Tabs)
	})
}

func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	return err == nil && (stat.Mode()&os.ModeCharDevice) == 0
}
