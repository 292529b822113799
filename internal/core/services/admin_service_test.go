package services

import (
	"context"
	"testing"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/repositories"
	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCleaner(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(repositories.NewCleanerRepository(db))

	cleaner, err := svc.AddCleaner(context.Background(), &AddCleanerInput{
		EmployeeID: "EMP010",
		Name:       "Ramu",
		Password:   "password123",
		Blocks:     []string{"A", "B"},
	})
	require.NoError(t, err)

	assert.True(t, cleaner.IsActive)
	assert.Equal(t, []string{"A", "B"}, []string(cleaner.AssignedBlocks))
	assert.True(t, password.Verify("password123", cleaner.Password))
}

func TestAddCleanerDuplicateEmployeeID(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(repositories.NewCleanerRepository(db))
	seedCleaner(t, db, "EMP010", "Ramu", []string{"A"}, true)

	_, err := svc.AddCleaner(context.Background(), &AddCleanerInput{
		EmployeeID: "EMP010",
		Name:       "Another Ramu",
		Password:   "password123",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
}

func TestAddCleanerNilBlocks(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(repositories.NewCleanerRepository(db))

	cleaner, err := svc.AddCleaner(context.Background(), &AddCleanerInput{
		EmployeeID: "EMP011",
		Name:       "Shamu",
		Password:   "password123",
	})
	require.NoError(t, err)
	assert.Empty(t, []string(cleaner.AssignedBlocks))
	assert.NotNil(t, []string(cleaner.AssignedBlocks))
}

func TestListCleaners(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(repositories.NewCleanerRepository(db))
	seedCleaner(t, db, "EMP001", "Ramu", []string{"A"}, true)
	seedCleaner(t, db, "EMP002", "Shamu", []string{"B"}, true)
	seedCleaner(t, db, "EMP003", "Chotu", []string{"C"}, false)

	cleaners, total, err := svc.ListCleaners(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, cleaners, 2)

	rest, _, err := svc.ListCleaners(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestRoommates(t *testing.T) {
	db := newTestDB(t)
	svc := NewStudentService(repositories.NewStudentRepository(db))
	alice := seedStudent(t, db, "alice@vitstudent.ac.in", "Alice", "A", "101")
	seedStudent(t, db, "asha@vitstudent.ac.in", "Asha", "A", "101")
	seedStudent(t, db, "bob@vitstudent.ac.in", "Bob", "B", "201")

	roommates, err := svc.Roommates(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, roommates, 2)

	names := []string{roommates[0].Name, roommates[1].Name}
	assert.Contains(t, names, "Alice")
	assert.Contains(t, names, "Asha")
}

func TestRoommatesNoGroup(t *testing.T) {
	db := newTestDB(t)
	svc := NewStudentService(repositories.NewStudentRepository(db))
	alice := seedStudent(t, db, "alice@vitstudent.ac.in", "Alice", "A", "101")
	require.NoError(t, db.Model(alice).Update("group_no", "").Error)

	roommates, err := svc.Roommates(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, roommates)
}

func TestRoommatesUnknownStudent(t *testing.T) {
	db := newTestDB(t)
	svc := NewStudentService(repositories.NewStudentRepository(db))

	_, err := svc.Roommates(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
