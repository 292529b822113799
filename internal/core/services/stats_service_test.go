package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/models"
	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedCompletedRequest inserts a completed request row directly, optionally
// rated, with completed_at offset into the past by age
func seedCompletedRequest(t *testing.T, db *gorm.DB, student *models.Student, cleaner *models.Cleaner, rating *int, age time.Duration) *models.Request {
	t.Helper()

	accepted := time.Now().Add(-age - time.Hour)
	completed := time.Now().Add(-age)
	feedback := ""
	if rating != nil {
		feedback = fmt.Sprintf("feedback %d", *rating)
	}

	request := &models.Request{
		RequestID:   NewRequestID(),
		UserID:      student.ID,
		Block:       student.Block,
		RoomNumber:  student.RoomNumber,
		GroupNo:     student.GroupNo,
		Type:        "room_cleaning",
		QRCode:      "data:image/png;base64,",
		Status:      domain.StatusCompleted,
		CleanerID:   &cleaner.ID,
		AcceptedAt:  &accepted,
		CompletedAt: &completed,
		CompletedBy: &cleaner.ID,
		Rating:      rating,
		Feedback:    &feedback,
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

func seedPendingRequest(t *testing.T, db *gorm.DB, student *models.Student) *models.Request {
	t.Helper()

	request := &models.Request{
		RequestID:  NewRequestID(),
		UserID:     student.ID,
		Block:      student.Block,
		RoomNumber: student.RoomNumber,
		GroupNo:    student.GroupNo,
		Type:       "room_cleaning",
		QRCode:     "data:image/png;base64,",
		Status:     domain.StatusPending,
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

func intPtr(v int) *int { return &v }

func TestAdminOverviewEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	overview, err := svc.GetAdminOverview(context.Background())
	require.NoError(t, err)

	assert.Zero(t, overview.TotalRequests)
	assert.Zero(t, overview.PendingRequests)
	assert.Zero(t, overview.CompletedRequests)
	assert.Empty(t, overview.BlockStats.Labels)
	assert.Empty(t, overview.BlockStats.Data)
	assert.Empty(t, overview.RecentReviews)
}

func TestAdminOverview(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)
	alice := seedStudent(t, db, "alice@vitstudent.ac.in", "Alice", "A", "101")
	bob := seedStudent(t, db, "bob@vitstudent.ac.in", "Bob", "B", "201")
	cleaner := seedCleaner(t, db, "EMP001", "Ramu", []string{"A", "B"}, true)

	seedPendingRequest(t, db, alice)
	seedPendingRequest(t, db, bob)
	seedCompletedRequest(t, db, alice, cleaner, intPtr(5), time.Hour)
	seedCompletedRequest(t, db, alice, cleaner, nil, 2*time.Hour)
	seedCompletedRequest(t, db, bob, cleaner, intPtr(3), 3*time.Hour)

	overview, err := svc.GetAdminOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(5), overview.TotalRequests)
	assert.Equal(t, int64(2), overview.PendingRequests)
	assert.Equal(t, int64(3), overview.CompletedRequests)

	// blocks with no requests are absent, present ones are sorted
	assert.Equal(t, []string{"A", "B"}, overview.BlockStats.Labels)
	assert.Equal(t, []int64{3, 2}, overview.BlockStats.Data)

	// only rated completions appear, newest first
	require.Len(t, overview.RecentReviews, 2)
	assert.Equal(t, 5, overview.RecentReviews[0].Rating)
	assert.Equal(t, "Alice", overview.RecentReviews[0].Student)
	assert.Equal(t, "Ramu", overview.RecentReviews[0].Cleaner)
	assert.Equal(t, 3, overview.RecentReviews[1].Rating)
}

func TestAdminOverviewRecentReviewsCapped(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)
	student := seedStudent(t, db, "alice@vitstudent.ac.in", "Alice", "A", "101")
	cleaner := seedCleaner(t, db, "EMP001", "Ramu", []string{"A"}, true)

	for i := 0; i < 8; i++ {
		seedCompletedRequest(t, db, student, cleaner, intPtr(4), time.Duration(i)*time.Hour)
	}

	overview, err := svc.GetAdminOverview(context.Background())
	require.NoError(t, err)
	assert.Len(t, overview.RecentReviews, 5)
}

func TestCleanerStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)
	student := seedStudent(t, db, "alice@vitstudent.ac.in", "Alice", "A", "101")
	cleaner := seedCleaner(t, db, "EMP001", "Ramu", []string{"A", "B"}, true)
	other := seedCleaner(t, db, "EMP002", "Shamu", []string{"C"}, true)

	seedCompletedRequest(t, db, student, cleaner, intPtr(5), time.Hour)
	seedCompletedRequest(t, db, student, cleaner, intPtr(4), 2*time.Hour)
	seedCompletedRequest(t, db, student, cleaner, nil, 3*time.Hour)
	seedCompletedRequest(t, db, student, other, intPtr(1), time.Hour)

	stats, err := svc.GetCleanerStats(context.Background(), cleaner.ID)
	require.NoError(t, err)

	assert.Equal(t, "Ramu", stats.Name)
	assert.Equal(t, "EMP001", stats.EmployeeID)
	assert.Equal(t, []string{"A", "B"}, stats.Blocks)
	assert.Equal(t, int64(3), stats.TotalCleaned)
	assert.Equal(t, int64(2), stats.RatingCount)
	assert.InDelta(t, 4.5, stats.AvgRating, 0.001)

	require.Len(t, stats.History, 3)
	assert.Equal(t, "Alice", stats.History[0].Student)
	assert.Equal(t, "101", stats.History[0].Room)
	require.NotNil(t, stats.History[0].Rating)
	assert.Equal(t, 5, *stats.History[0].Rating)
}

func TestCleanerStatsZeroRatings(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)
	cleaner := seedCleaner(t, db, "EMP001", "Ramu", []string{"A"}, true)

	stats, err := svc.GetCleanerStats(context.Background(), cleaner.ID)
	require.NoError(t, err)

	assert.Zero(t, stats.TotalCleaned)
	assert.Zero(t, stats.RatingCount)
	assert.Zero(t, stats.AvgRating)
	assert.Empty(t, stats.History)
}

func TestCleanerStatsHistoryCapped(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)
	student := seedStudent(t, db, "alice@vitstudent.ac.in", "Alice", "A", "101")
	cleaner := seedCleaner(t, db, "EMP001", "Ramu", []string{"A"}, true)

	for i := 0; i < 7; i++ {
		seedCompletedRequest(t, db, student, cleaner, intPtr(3), time.Duration(i)*time.Hour)
	}

	stats, err := svc.GetCleanerStats(context.Background(), cleaner.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(7), stats.TotalCleaned)
	assert.Len(t, stats.History, 5)
}

func TestCleanerStatsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	_, err := svc.GetCleanerStats(context.Background(), 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
