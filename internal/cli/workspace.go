package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/tabspace/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage workspaces",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		Args:  cobra.NoArgs,
		Run:   runWorkspaceList,
	}
	create := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a workspace",
		Args:  cobra.MinimumNArgs(1),
		Run:   runWorkspaceCreate,
	}
	create.Flags().Bool("use", false, "Make the new workspace active")
	rename := &cobra.Command{
		Use:   "rename [id] [name]",
		Short: "Rename a workspace",
		Args:  cobra.MinimumNArgs(2),
		Run:   runWorkspaceRename,
	}
	rm := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a workspace and its groups",
		Long:  "Delete a workspace and its groups. The last workspace cannot be deleted.",
		Args:  cobra.ExactArgs(1),
		Run:   runWorkspaceRm,
	}
	use := &cobra.Command{
		Use:   "use [id]",
		Short: "Set the active workspace",
		Args:  cobra.ExactArgs(1),
		Run:   runWorkspaceUse,
	}

	cmd.AddCommand(list, create, rename, rm, use)
	RootCmd.AddCommand(cmd)
}

type workspaceSummary struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Groups int    `json:"groups" yaml:"groups"`
	Tabs   int    `json:"tabs" yaml:"tabs"`
	Active bool   `json:"active" yaml:"active"`
}

func runWorkspaceList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	active, err := store.EnsureDefault(cmd.Context(), s, loadConfig().Workspace.DefaultName)
	if err != nil {
		exitErr("load workspaces", err)
	}
	all, err := s.LoadWorkspaces(cmd.Context())
	if err != nil {
		exitErr("load workspaces", err)
	}

	summaries := make([]workspaceSummary, 0, len(all))
	for _, ws := range all {
		sum := workspaceSummary{ID: ws.ID, Name: ws.Name, Groups: len(ws.Groups), Active: ws.ID == active.ID}
		for _, g := range ws.Groups {
			sum.Tabs += len(g.Tabs)
		}
		summaries = append(summaries, sum)
	}

	output(cmd, summaries, func(w io.Writer) {
		for _, sum := range summaries {
			mark := " "
			if sum.Active {
				mark = "*"
			}
			fmt.Fprintf(w, "%s %s  %s (%d groups, %d tabs)\n", mark, sum.ID, sum.Name, sum.Groups, sum.Tabs)
		}
	})
}

func runWorkspaceCreate(cmd *cobra.Command, args []string) {
	use, _ := cmd.Flags().GetBool("use")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ws, err := store.CreateWorkspace(cmd.Context(), s, strings.Join(args, " "))
	if err != nil {
		exitErr("create workspace", err)
	}
	if use {
		if err := store.SetActiveWorkspace(cmd.Context(), s, ws.ID); err != nil {
			exitErr("use workspace", err)
		}
	}
	output(cmd, ws, func(w io.Writer) { fmt.Fprintln(w, ws.ID) })
}

func runWorkspaceRename(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	name := strings.Join(args[1:], " ")
	if err := store.RenameWorkspace(cmd.Context(), s, args[0], name); err != nil {
		exitErr("rename workspace", err)
	}
	printOK(cmd, map[string]any{"id": args[0], "name": name})
}

func runWorkspaceRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := store.RemoveWorkspace(cmd.Context(), s, args[0]); err != nil {
		exitErr("rm workspace", err)
	}
	printOK(cmd, map[string]any{"id": args[0]})
}

func runWorkspaceUse(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := store.SetActiveWorkspace(cmd.Context(), s, args[0]); err != nil {
		exitErr("use workspace", err)
	}
	printOK(cmd, map[string]any{"active": args[0]})
}
