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
		Use:   "search [query]",
		Short: "Search saved tabs by keyword",
		Long:  "Search saved tab titles and urls for matching text, across all workspaces unless --workspace is set.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.Search(cmd.Context(), store.SearchParams{
		WorkspaceID: wsFlag,
		Query:       query,
		Limit:       limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	output(cmd, results, func(w io.Writer) {
		for _, r := range results {
			fmt.Fprintf(w, "%s/%s  %s  %s\n", r.WorkspaceID, r.GroupName, r.Title, r.URL)
		}
	})
}
