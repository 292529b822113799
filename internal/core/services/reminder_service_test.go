package services

import (
	"context"
	"testing"
	"time"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/models"
	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func TestReportStalePending(t *testing.T) {
	db := newTestDB(t)
	svc := NewReminderService(db)
	student := seedStudent(t, db, "alice@vitstudent.ac.in", "Alice", "A", "101")

	stale := &models.Request{
		RequestID:  NewRequestID(),
		UserID:     student.ID,
		Block:      student.Block,
		RoomNumber: student.RoomNumber,
		GroupNo:    student.GroupNo,
		Type:       "room_cleaning",
		QRCode:     "data:image/png;base64,",
		Status:     domain.StatusPending,
	}
	require.NoError(t, db.Create(stale).Error)
	require.NoError(t, db.Model(stale).Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	// log-only report, must not error or panic on both paths
	svc.reportStalePending(context.Background())

	require.NoError(t, db.Model(stale).Update("created_at", time.Now()).Error)
	svc.reportStalePending(context.Background())
}
