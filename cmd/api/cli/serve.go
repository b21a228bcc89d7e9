package cli

import (
	"github.com/spf13/cobra"

	"coin-wallet-service/cmd/api/app"
	"coin-wallet-service/cmd/api/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (default)",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func serve(cmd *cobra.Command, _ []string) error {
	a, err := app.New(options())
	if err != nil {
		return err
	}

	ctx, stop := server.WithSignal(cmd.Context())
	defer stop()

	return a.Run(ctx)
}
