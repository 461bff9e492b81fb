package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/rcliao/tabspace/internal/bridge"
	"github.com/rcliao/tabspace/internal/dnd"
	"github.com/rcliao/tabspace/internal/logx"
)

func init() {
	cmd := &cobra.Command{
		Use:   "host [origin]",
		Short: "Run the native-messaging host",
		Long: `Run the native-messaging host on stdin and stdout. The browser starts it with
the calling extension's origin; it serves drag, window and workspace calls
until the extension disconnects. Logs go to stderr.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runHost,
	}
	// Windows browsers also pass --parent-window.
	cmd.FParseErrWhitelist.UnknownFlags = true

	RootCmd.AddCommand(cmd)
}

func runHost(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log := logx.New(os.Stderr, cfg.Logging.Level)
	if len(args) > 0 {
		log = log.With("origin", args[0])
	}
	ctx, cancel := context.WithCancel(pslog.ContextWithLogger(cmd.Context(), log))
	defer cancel()

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	conn := bridge.NewConn(os.Stdin, os.Stdout, bridge.WithMaxIncoming(cfg.Host.MaxMessageBytes))
	live := bridge.NewRemoteSource(conn)
	engine := dnd.New(live, s, dnd.NewMirror())
	host := bridge.NewHost(conn, live, s, engine,
		bridge.WithDefaultWorkspaceName(cfg.Workspace.DefaultName),
		bridge.WithSnapshotCloseDefault(cfg.Snapshot.CloseWindows),
	)

	runErr := make(chan error, 1)
	go func() { runErr <- conn.Run(ctx) }()

	log.Info("native host started", "db", getDBPath())
	if err := host.Serve(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	select {
	case err := <-runErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	log.Info("native host stopped")
	return nil
}
