package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/tabspace/internal/browser"
	"github.com/rcliao/tabspace/internal/snapshot"
	"github.com/rcliao/tabspace/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage tab groups in a workspace",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List groups and their tabs",
		Args:  cobra.NoArgs,
		Run:   runGroupList,
	}
	create := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a group",
		Args:  cobra.MinimumNArgs(1),
		Run:   runGroupCreate,
	}
	rename := &cobra.Command{
		Use:   "rename [group-id] [name]",
		Short: "Rename a group",
		Args:  cobra.MinimumNArgs(2),
		Run:   runGroupRename,
	}
	rm := &cobra.Command{
		Use:   "rm [group-id]",
		Short: "Delete a group and its tabs",
		Args:  cobra.ExactArgs(1),
		Run:   runGroupRm,
	}
	restore := &cobra.Command{
		Use:   "restore [group-id]",
		Short: "Show the window a restore would open",
		Long:  "Lay out the window that restoring the group opens: one tab per saved tab, in order. Live restores go through the host.",
		Args:  cobra.ExactArgs(1),
		Run:   runGroupRestore,
	}

	cmd.AddCommand(list, create, rename, rm, restore)
	RootCmd.AddCommand(cmd)
}

func runGroupList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ws, err := s.GetWorkspace(cmd.Context(), workspaceID(cmd, s))
	if err != nil {
		exitErr("load workspace", err)
	}

	output(cmd, ws.Groups, func(w io.Writer) {
		for _, g := range ws.Groups {
			fmt.Fprintf(w, "%s  %s (%d tabs)\n", g.ID, g.Name, len(g.Tabs))
			for _, t := range g.Tabs {
				fmt.Fprintf(w, "    %s  %s\n", t.ID, t.URL)
			}
		}
	})
}

func runGroupCreate(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	g, err := store.CreateGroup(cmd.Context(), s, workspaceID(cmd, s), strings.Join(args, " "))
	if err != nil {
		exitErr("create group", err)
	}
	output(cmd, g, func(w io.Writer) { fmt.Fprintln(w, g.ID) })
}

func runGroupRename(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	name := strings.Join(args[1:], " ")
	if err := store.RenameGroup(cmd.Context(), s, workspaceID(cmd, s), args[0], name); err != nil {
		exitErr("rename group", err)
	}
	printOK(cmd, map[string]any{"id": args[0], "name": name})
}

func runGroupRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := store.DeleteGroup(cmd.Context(), s, workspaceID(cmd, s), args[0]); err != nil {
		exitErr("rm group", err)
	}
	printOK(cmd, map[string]any{"id": args[0]})
}

func runGroupRestore(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	win, err := snapshot.RestoreGroup(cmd.Context(), browser.NewFake(), s, workspaceID(cmd, s), args[0])
	if err != nil {
		exitErr("restore group", err)
	}
	output(cmd, win, func(w io.Writer) {
		for _, t := range win.Tabs {
			fmt.Fprintln(w, t.URL)
		}
	})
}
