package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/database"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/repository"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  runMigrate,
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account, or promote an existing one",
	Long: `Creates an admin account with the given email. If an account with that email
already exists it is promoted to admin and its password is left unchanged.

Example:
  campusctl create-admin --email dean@gcet.edu.in --name "Dean" --password s3cret!`,
	RunE: runCreateAdmin,
}

var seedProblemsCmd = &cobra.Command{
	Use:   "seed-problems",
	Short: "Load problem statements from a YAML file",
	Long: `Upserts problem statements keyed by problem_statement_id.

File format:
  problems:
    - problem_statement_id: "25001"
      title: Campus Waste
      theme: Sustainability
      category: Software
      description: ...`,
	RunE: runSeedProblems,
}

var cleanupQueriesCmd = &cobra.Command{
	Use:   "cleanup-queries",
	Short: "Delete resolved queries older than the retention window",
	RunE:  runCleanupQueries,
}

// problemCatalog is the seed file layout.
type problemCatalog struct {
	Problems []services.ProblemInput `yaml:"problems"`
}

func runMigrate(cmd *cobra.Command, args []string) error {
	return database.MigrateDatabase(db, logger)
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	email, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv("CAMPUSCTL_ADMIN_PASSWORD")
	}

	auth := services.NewAuthService(repository.NewUserRepository(db), cfg.AllowedEmailDomain)
	user, created, err := auth.EnsureAdmin(ctx, services.CreateAdminInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	if created {
		logger.Info("Admin account created", zap.String("user_id", user.ID), zap.String("email", user.Email))
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.Email, user.ID)
	} else {
		logger.Info("Existing account promoted to admin", zap.String("user_id", user.ID), zap.String("email", user.Email))
		fmt.Fprintf(cmd.OutOrStdout(), "promoted %s (%s) to admin\n", user.Email, user.ID)
	}
	return nil
}

func runSeedProblems(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	path, _ := cmd.Flags().GetString("file")
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var catalog problemCatalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	problems := services.NewProblemService(repository.NewProblemRepository(db), nil)
	n, err := problems.Seed(ctx, catalog.Problems)
	if err != nil {
		return fmt.Errorf("seed problems (%d loaded before failure): %w", n, err)
	}

	logger.Info("Problem statements seeded", zap.Int("count", n), zap.String("file", path))
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d problem statements\n", n)
	return nil
}

func runCleanupQueries(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	queries := services.NewQueryService(repository.NewQueryRepository(db), nil, cfg.QueryRetention, logger)
	deleted, err := queries.CleanupResolved(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "removed %d resolved queries\n", deleted)
	return nil
}
