package database

import (
	"fmt"
	"strings"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registrationProblemFK is the constraint older schemas carry from team_registrations to
// problem_statements.
const registrationProblemFK = "fk_team_registrations_problem"

// DropRegistrationProblemFK removes the registration to problem constraint if an earlier
// migration created it, so deleting a problem leaves its registrations in place.
func DropRegistrationProblemFK(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()
	if !migrator.HasConstraint(&models.TeamRegistration{}, registrationProblemFK) {
		return nil
	}
	if err := migrator.DropConstraint(&models.TeamRegistration{}, registrationProblemFK); err != nil {
		return fmt.Errorf("failed to drop constraint %s: %w", registrationProblemFK, err)
	}
	log.Info("Dropped constraint", zap.String("constraint", registrationProblemFK))
	return nil
}

// AddIndexes adds the composite indexes the dashboard and cleanup queries rely on.
// AutoMigrate already covers single-column indexes declared on the models.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns []string
	}{
		// Resolved-query cleanup scans on status + resolved_at
		{"user_queries", "idx_user_queries_status_resolved_at", []string{"status", "resolved_at"}},

		// Public event listing filters active events and orders by date
		{"events", "idx_events_active_date", []string{"is_active", "event_date"}},

		// Per-problem counts on the admin dashboard
		{"team_registrations", "idx_team_registrations_problem_created", []string{"problem_id", "created_at"}},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, strings.Join(idx.columns, ", "))
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}

// MigrateDatabase runs AutoMigrate followed by the extra indexes.
func MigrateDatabase(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := DropRegistrationProblemFK(db, log); err != nil {
		return err
	}

	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
