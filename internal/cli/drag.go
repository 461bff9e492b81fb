package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/tabspace/internal/browser"
	"github.com/rcliao/tabspace/internal/dnd"
)

func init() {
	cmd := &cobra.Command{
		Use:   "drag [active-id] [over-id]",
		Short: "Apply a drag between saved groups",
		Long: `Apply a drag gesture to saved groups, the way the new-tab page does.

Element ids use the page's encoding: group-<group>-tab-<tab> for a saved tab
and group-<group> for a group. Dropping a saved tab on another tab of its
group reorders the group; dropping it on another group moves it there.
Gestures that touch live windows need the browser and fail here.`,
		Args: cobra.ExactArgs(2),
		Run:  runDrag,
	}

	RootCmd.AddCommand(cmd)
}

func runDrag(cmd *cobra.Command, args []string) {
	origin, valid := dnd.ParseSurface(args[0])
	if !valid || origin.Type != dnd.ContainerGroup {
		exitErr("drag", fmt.Errorf("%q is not a saved tab element id", args[0]))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	engine := dnd.New(browser.Offline{}, s, nil)
	out, err := engine.DragEnd(cmd.Context(), dnd.Drop{
		ActiveID:    args[0],
		Origin:      origin,
		OverID:      args[1],
		WorkspaceID: workspaceID(cmd, s),
	})
	if errors.Is(err, browser.ErrUnavailable) {
		exitErr("drag", fmt.Errorf("%s needs a live browser: %w", out.Transition, err))
	}
	if err != nil {
		exitErr("drag", err)
	}

	output(cmd, out, func(w io.Writer) {
		switch {
		case out.Deduplicated:
			fmt.Fprintf(w, "%s: url already in target group\n", out.Transition)
		case out.Changed:
			fmt.Fprintf(w, "%s: applied\n", out.Transition)
		default:
			fmt.Fprintf(w, "%s: no change\n", out.Transition)
		}
	})
}
