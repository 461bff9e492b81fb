package main

import (
	"context"
	"log"
	"os"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/rcliao/tabspace/internal/cli"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	cli.RootCmd.SetArgs(cli.NativeHostArgs(os.Args[1:]))
	if err := cli.RootCmd.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("tabspace command failed")
		return 1
	}
	return 0
}
