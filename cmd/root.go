package cmd

import (
	"os"

	"github.com/spendwise/spendwise/internal/app"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:           "spendwise",
	Short:         "Personal finance tracker API",
	Long:          "Records categorized expenses per user and serves ledger queries and spending statistics over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (default command)",
	RunE:  runServe,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", app.DefaultConfigPath, "Path to the YAML configuration file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	application, err := app.NewApplication(flagConfig)
	if err != nil {
		return err
	}
	return application.Run()
}
