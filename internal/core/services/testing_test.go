package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/models"
	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/repositories"
	"github.com/Sujal-Mishra/cleanvit/internal/config"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory database with the full schema.
// The pool is capped at one connection so concurrent callers serialize at
// the pool instead of hitting sqlite table locks.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:cleanvit_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 1,
		},
	}
}

func seedStudent(t *testing.T, db *gorm.DB, email, name, block, room string) *models.Student {
	t.Helper()

	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	student := &models.Student{
		Email:      email,
		Password:   hashed,
		Name:       name,
		Block:      block,
		RoomNumber: room,
		GroupNo:    GroupKey(block, room),
		Role:       "student",
	}
	require.NoError(t, db.Create(student).Error)
	return student
}

func seedCleaner(t *testing.T, db *gorm.DB, employeeID, name string, blocks []string, active bool) *models.Cleaner {
	t.Helper()

	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	cleaner := &models.Cleaner{
		EmployeeID:     employeeID,
		Name:           name,
		Password:       hashed,
		AssignedBlocks: datatypes.NewJSONSlice(blocks),
		IsActive:       active,
	}
	require.NoError(t, db.Create(cleaner).Error)
	if !active {
		// the column default is true, so force the flag explicitly
		require.NoError(t, db.Model(cleaner).Update("is_active", false).Error)
		cleaner.IsActive = false
	}
	return cleaner
}

func seedAdmin(t *testing.T, db *gorm.DB, username string) *models.Admin {
	t.Helper()

	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	admin := &models.Admin{Username: username, Password: hashed}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

// newRequestService wires a request service over real repositories
func newRequestService(db *gorm.DB, verifier ProofVerifier) *RequestService {
	return NewRequestService(
		repositories.NewRequestRepository(db),
		repositories.NewStudentRepository(db),
		repositories.NewCleanerRepository(db),
		verifier,
	)
}

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repositories.NewStudentRepository(db),
		repositories.NewCleanerRepository(db),
		repositories.NewAdminRepository(db),
		repositories.NewSignupOTPRepository(db),
		testConfig(),
	)
}
