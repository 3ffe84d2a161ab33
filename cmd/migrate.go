package cmd

import (
	"fmt"

	"github.com/spendwise/spendwise/internal/config"
	"github.com/spendwise/spendwise/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE:  runMigrate,
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cfg.Storage != config.StoragePostgres {
		return fmt.Errorf("migrations need postgres storage, configured storage is %q", cfg.Storage)
	}
	if err := database.Migrate(cfg.Database); err != nil {
		return err
	}
	log.Infof("Database %s is up to date", cfg.Database.Name)
	return nil
}
