package database

import (
	"testing"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/config"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrateDatabaseIsRepeatable(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	log := zap.NewNop()
	require.NoError(t, MigrateDatabase(db, log))
	require.NoError(t, MigrateDatabase(db, log))

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable("page_content"))
	assert.True(t, migrator.HasIndex("user_queries", "idx_user_queries_status_resolved_at"))
	assert.True(t, migrator.HasIndex("events", "idx_events_active_date"))
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestProblemDeleteKeepsRegistrationsWithForeignKeysOn(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, MigrateDatabase(db, zap.NewNop()))
	assert.False(t, db.Migrator().HasConstraint(&models.TeamRegistration{}, registrationProblemFK))

	problem := &models.ProblemStatement{ProblemStatementID: "25001", Title: "Campus Waste", Theme: "Academic"}
	require.NoError(t, db.Create(problem).Error)
	reg := &models.TeamRegistration{
		UserID: "student-1", TeamName: "Green Innovators", ProblemID: problem.ID,
		Member1Name: "Lead", Member1Roll: "R1", Year: "2nd", Department: "CSE",
		Phone: "9876543210", Email: "lead@gcet.edu.in",
	}
	require.NoError(t, db.Create(reg).Error)

	require.NoError(t, db.Delete(&models.ProblemStatement{}, "id = ?", problem.ID).Error)

	var remaining int64
	require.NoError(t, db.Model(&models.TeamRegistration{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
}
