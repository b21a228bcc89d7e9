package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coin-wallet-service/cmd/api/app"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the users table and insert the default users if it is empty",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := app.New(options())
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				a.Logger.Warn("failed to release resources", zap.Error(err))
			}
		}()

		inserted, err := a.Seed(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "inserted %d users\n", inserted)
		return nil
	},
}
