package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/tabspace/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		Run:   runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing config")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		Run:   runConfigShow,
	}

	cmd.AddCommand(initCmd, show)
	RootCmd.AddCommand(cmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	force, _ := cmd.Flags().GetBool("force")
	path, err := config.WriteDefault(configPath, force)
	if err != nil {
		exitErr("config init", err)
	}
	printOK(cmd, map[string]any{"path": path})
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	output(cmd, cfg, func(w io.Writer) {
		fmt.Fprintf(w, "db_path: %s\nhttp.addr: %s\nlogging.level: %s\n", cfg.DBPath, cfg.HTTP.Addr, cfg.Logging.Level)
	})
}
