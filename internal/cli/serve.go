package cli

import (
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/rcliao/tabspace/internal/httpapi"
	"github.com/rcliao/tabspace/internal/logx"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local HTTP API",
		Long:  "Serve read, search and backup endpoints over the workspace store until interrupted.",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default: the config's http.addr)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	cfg := loadConfig()
	if addr == "" {
		addr = cfg.HTTP.Addr
	}
	log := logx.New(os.Stderr, cfg.Logging.Level)
	ctx := pslog.ContextWithLogger(cmd.Context(), log)

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	return httpapi.New(httpapi.Config{Listen: addr}, s, log).Start(ctx)
}
