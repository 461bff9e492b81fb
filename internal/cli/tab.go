package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/tabspace/internal/model"
	"github.com/rcliao/tabspace/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "tab",
		Short: "Manage saved tabs",
	}

	add := &cobra.Command{
		Use:   "add [group-id] [url]",
		Short: "Save a url into a group",
		Long:  "Save a url into a group. A url already in the group is not added twice.",
		Args:  cobra.ExactArgs(2),
		Run:   runTabAdd,
	}
	add.Flags().StringP("title", "t", "", "Tab title (default: the url)")
	add.Flags().String("favicon", "", "Favicon url")

	rm := &cobra.Command{
		Use:   "rm [group-id] [tab-id]",
		Short: "Remove a saved tab",
		Args:  cobra.ExactArgs(2),
		Run:   runTabRm,
	}

	move := &cobra.Command{
		Use:   "move [from-group-id] [to-group-id] [tab-id]",
		Short: "Move a saved tab to another group",
		Long:  "Move a saved tab to the end of another group. Nothing moves when the target already holds the url.",
		Args:  cobra.ExactArgs(3),
		Run:   runTabMove,
	}

	cmd.AddCommand(add, rm, move)
	RootCmd.AddCommand(cmd)
}

func runTabAdd(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")
	favicon, _ := cmd.Flags().GetString("favicon")
	if title == "" {
		title = args[1]
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	tab := model.PersistedTab{ID: store.NewID(), Title: title, URL: args[1], FavIconURL: favicon}
	added, err := store.AddTabToGroup(cmd.Context(), s, workspaceID(cmd, s), args[0], tab)
	if err != nil {
		exitErr("add tab", err)
	}
	result := map[string]any{"added": added}
	if added {
		result["id"] = tab.ID
	}
	output(cmd, result, func(w io.Writer) {
		if added {
			fmt.Fprintln(w, tab.ID)
		} else {
			fmt.Fprintln(w, "already saved")
		}
	})
}

func runTabRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := store.RemoveTabFromGroup(cmd.Context(), s, workspaceID(cmd, s), args[0], args[1]); err != nil {
		exitErr("rm tab", err)
	}
	printOK(cmd, map[string]any{"group": args[0], "id": args[1]})
}

func runTabMove(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	moved, err := store.MoveTabBetweenGroups(cmd.Context(), s, workspaceID(cmd, s), args[0], args[1], args[2])
	if err != nil {
		exitErr("move tab", err)
	}
	output(cmd, map[string]any{"moved": moved}, func(w io.Writer) {
		if moved {
			fmt.Fprintln(w, "moved")
		} else {
			fmt.Fprintln(w, "already in target group")
		}
	})
}
