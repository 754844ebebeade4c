// Package cli provides the hub command line.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"household-hub/internal/config"
	"household-hub/internal/repository"
	"household-hub/internal/service"
)

var configPath string

// shared per-invocation state (set in PersistentPreRunE)
var (
	cfg         config.Config
	db          *gorm.DB
	userRepo    *repository.UserRepository
	reminderSvc *service.ReminderService
	assetSvc    *service.AssetService
	prefsSvc    *service.PreferencesService
)

// RootCmd is the root cobra command.
var RootCmd = &cobra.Command{
	Use:           "hub",
	Short:         "Household Hub reminder backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// stdout belongs to the MCP protocol in `hub mcp`.
		log.SetOutput(os.Stderr)

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if cfg.HTTP.ReleaseMode {
			gin.SetMode(gin.ReleaseMode)
		}

		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		db, err = repository.NewDB(cfg.Database.URL, repository.Options{
			LogLevel: cfg.Database.LogLevel,
		})
		if err != nil {
			return fmt.Errorf("db: %w", err)
		}

		userRepo = repository.NewUserRepository(db)
		assetSvc = service.NewAssetService(db)
		prefsSvc = service.NewPreferencesService(repository.NewPreferencesRepository(db))
		reminderSvc = service.NewReminderService(repository.NewReminderRepository(db), assetSvc, service.ReminderOptions{
			WindowDays:    cfg.Reminders.WindowDays,
			LookaheadDays: cfg.Reminders.LookaheadDays,
			Location:      loc,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db == nil {
			return
		}
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	},
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "hub.yaml", "Path to the YAML config file (optional)")

	RootCmd.AddCommand(
		serveCmd,
		syncCmd,
		summaryCmd,
		mcpCmd,
	)
}
