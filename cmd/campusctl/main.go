// Command campusctl runs operator tasks against the Campuspreneurs database.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/config"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/database"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	timeout time.Duration

	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
)

var rootCmd = &cobra.Command{
	Use:   "campusctl",
	Short: "Operator tooling for the Campuspreneurs API",
	Long: `campusctl manages the Campuspreneurs database outside the HTTP server.

It reads the same environment (and .env file) as the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			cfg = config.Load()
		}
		if logger == nil {
			var err error
			logger, err = logging.New(cfg.GinMode)
			if err != nil {
				return err
			}
		}
		if db == nil {
			if err := database.Connect(cfg, logger); err != nil {
				return err
			}
			db = database.GetDB()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	createAdminCmd.Flags().String("email", "", "Admin email (required)")
	createAdminCmd.Flags().String("name", "", "Display name")
	createAdminCmd.Flags().String("password", "", "Password for a new account (or set CAMPUSCTL_ADMIN_PASSWORD)")
	createAdminCmd.MarkFlagRequired("email")

	seedProblemsCmd.Flags().StringP("file", "f", "problems.yaml", "YAML catalog to load")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(seedProblemsCmd)
	rootCmd.AddCommand(cleanupQueriesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
