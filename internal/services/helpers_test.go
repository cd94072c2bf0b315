package services

import (
	"context"
	"testing"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/database"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/models"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/repository"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	testAdmin   = Actor{UserID: "admin-1", Email: "admin@gcet.edu.in", Name: "Admin", Admin: true}
	testStudent = Actor{UserID: "student-1", Email: "asha@gcet.edu.in", Name: "Asha"}
)

// newTestDB opens a migrated in-memory database limited to one connection so every
// goroutine sees the same schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

// newForeignKeyTestDB is newTestDB with SQLite foreign key enforcement turned on and the
// full migration applied, matching how MySQL and Postgres treat constraints.
func newForeignKeyTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.MigrateDatabase(db, zap.NewNop()))
	return db
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir(), "http://files.test")
	require.NoError(t, err)
	return store
}

func seedProblem(t *testing.T, db *gorm.DB, humanID, title, theme string) *models.ProblemStatement {
	t.Helper()
	p := &models.ProblemStatement{ProblemStatementID: humanID, Title: title, Theme: theme}
	require.NoError(t, repository.NewProblemRepository(db).Create(context.Background(), p))
	return p
}

func validTeam() TeamInput {
	return TeamInput{
		TeamName:   "Green Innovators",
		Members:    []models.Member{{Name: "Asha", Roll: "21CS001"}, {Name: "Ravi", Roll: "21CS002"}},
		Year:       "3rd",
		Department: "CSE",
		Phone:      "9876543210",
		Email:      "asha@gcet.edu.in",
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
