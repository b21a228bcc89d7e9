package cli

import (
	"github.com/spf13/cobra"

	"coin-wallet-service/cmd/api/app"
)

var rootCmdPersistentFlags struct {
	ConfigPath string
	LogLevel   string
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigPath, "config", "c", "", "Directory containing app.env (default: $CONFIG_PATH or current dir)")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - overrides LOG_LEVEL")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

var rootCmd = &cobra.Command{
	Use:   "coin-wallet-service",
	Short: "Coin wallet balance API",
	Long:  `Serves the balances of a fixed set of wallet users together with their value at the current market price.`,
	Example: `coin-wallet-service
  coin-wallet-service serve --config /etc/coin-wallet
  coin-wallet-service seed --log-level debug`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	RunE:         serve,
}

func options() app.Options {
	return app.Options{
		ConfigPath: rootCmdPersistentFlags.ConfigPath,
		LogLevel:   rootCmdPersistentFlags.LogLevel,
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
