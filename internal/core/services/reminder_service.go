package services

import (
	"context"
	"log"
	"time"

	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// staleAfter is how long a request may sit pending before it is reported
const staleAfter = 24 * time.Hour

// ReminderService runs the daily stale-pending report. It only writes to
// the operator log; there is no delivery channel.
type ReminderService struct {
	db   *gorm.DB
	cron *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{
		db:   db,
		cron: cron.New(cron.WithLocation(time.Local)),
	}
}

// Start schedules the daily report at 08:30
func (s *ReminderService) Start() {
	_, err := s.cron.AddFunc("30 8 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.reportStalePending(ctx)
	})
	if err != nil {
		log.Printf("❌ Failed to schedule stale-pending report: %v", err)
		return
	}

	s.cron.Start()
	log.Println("🚀 ReminderService started (daily stale-pending report at 08:30)")
}

// Stop stops the scheduler
func (s *ReminderService) Stop() {
	s.cron.Stop()
	log.Println("🛑 ReminderService stopped")
}

// reportStalePending logs pending requests older than staleAfter per block
func (s *ReminderService) reportStalePending(ctx context.Context) {
	cutoff := time.Now().Add(-staleAfter)

	var stale []struct {
		Block string
		Count int64
	}
	err := s.db.WithContext(ctx).Table("requests").
		Select("block, COUNT(*) as count").
		Where("status = ? AND created_at < ?", domain.StatusPending, cutoff).
		Group("block").
		Order("block ASC").
		Scan(&stale).Error
	if err != nil {
		log.Printf("❌ Stale-pending report query error: %v", err)
		return
	}

	if len(stale) == 0 {
		log.Println("✅ Stale-pending report: no requests pending longer than 24h")
		return
	}

	for _, row := range stale {
		log.Printf("⏰ Block %s: %d request(s) pending longer than 24h", row.Block, row.Count)
	}
}
