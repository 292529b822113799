package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"

	"gorm.io/gorm"
)

// StatsService computes read-only aggregates over historical requests
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new stats service
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// ============================================================
// Admin overview
// ============================================================

// BlockStats represents per-block request counts formatted for charting
type BlockStats struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// RecentReview represents a recent rated completion
type RecentReview struct {
	Student  string     `json:"student"`
	Cleaner  string     `json:"cleaner"`
	Rating   int        `json:"rating"`
	Feedback string     `json:"feedback"`
	Date     *time.Time `json:"date"`
}

// AdminOverview represents the admin dashboard payload
type AdminOverview struct {
	TotalRequests     int64          `json:"totalRequests"`
	PendingRequests   int64          `json:"pendingRequests"`
	CompletedRequests int64          `json:"completedRequests"`
	BlockStats        BlockStats     `json:"blockStats"`
	RecentReviews     []RecentReview `json:"recentReviews"`
}

// GetAdminOverview returns system-wide request statistics.
// Blocks that have never raised a request are absent from BlockStats
// rather than reported as zero.
func (s *StatsService) GetAdminOverview(ctx context.Context) (*AdminOverview, error) {
	data := &AdminOverview{}

	if err := s.db.WithContext(ctx).Table("requests").Count(&data.TotalRequests).Error; err != nil {
		return nil, err
	}
	s.db.WithContext(ctx).Table("requests").
		Where("status = ?", domain.StatusPending).Count(&data.PendingRequests)
	s.db.WithContext(ctx).Table("requests").
		Where("status = ?", domain.StatusCompleted).Count(&data.CompletedRequests)

	// Per-block counts
	var blockCounts []struct {
		Block string
		Count int64
	}
	s.db.WithContext(ctx).Table("requests").
		Select("block, COUNT(*) as count").
		Group("block").
		Order("block ASC").
		Scan(&blockCounts)

	data.BlockStats = BlockStats{Labels: []string{}, Data: []int64{}}
	for _, bc := range blockCounts {
		data.BlockStats.Labels = append(data.BlockStats.Labels, bc.Block)
		data.BlockStats.Data = append(data.BlockStats.Data, bc.Count)
	}

	// Recent rated reviews with requester and cleaner names
	var reviews []struct {
		StudentName string
		CleanerName string
		Rating      int
		Feedback    string
		CompletedAt *time.Time
	}
	s.db.WithContext(ctx).Table("requests").
		Select("users.name as student_name, cleaners.name as cleaner_name, requests.rating, requests.feedback, requests.completed_at").
		Joins("LEFT JOIN users ON requests.user_id = users.id").
		Joins("LEFT JOIN cleaners ON requests.cleaner_id = cleaners.id").
		Where("requests.rating IS NOT NULL").
		Order("requests.completed_at DESC").
		Limit(5).
		Scan(&reviews)

	data.RecentReviews = make([]RecentReview, len(reviews))
	for i, r := range reviews {
		data.RecentReviews[i] = RecentReview{
			Student:  r.StudentName,
			Cleaner:  r.CleanerName,
			Rating:   r.Rating,
			Feedback: r.Feedback,
			Date:     r.CompletedAt,
		}
	}

	return data, nil
}

// ============================================================
// Per-cleaner statistics
// ============================================================

// CleanerJob represents one entry in a cleaner's completed-job history
type CleanerJob struct {
	ID      uint       `json:"id"`
	Type    string     `json:"type"`
	Date    *time.Time `json:"date"`
	Rating  *int       `json:"rating"`
	Student string     `json:"student"`
	Room    string     `json:"room"`
}

// CleanerStats represents per-cleaner aggregate statistics
type CleanerStats struct {
	Name         string       `json:"name"`
	EmployeeID   string       `json:"employeeId"`
	Blocks       []string     `json:"blocks"`
	TotalCleaned int64        `json:"totalCleaned"`
	AvgRating    float64      `json:"avgRating"`
	RatingCount  int64        `json:"ratingCount"`
	History      []CleanerJob `json:"history"`
}

// GetCleanerStats returns a cleaner's completion count, average rating and
// recent job history. With zero ratings the average is 0, never NaN.
func (s *StatsService) GetCleanerStats(ctx context.Context, cleanerID uint) (*CleanerStats, error) {
	var cleaner struct {
		Name           string
		EmployeeID     string
		AssignedBlocks []byte
	}
	err := s.db.WithContext(ctx).Table("cleaners").
		Select("name, employee_id, assigned_blocks").
		Where("id = ?", cleanerID).
		Take(&cleaner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	stats := &CleanerStats{
		Name:       cleaner.Name,
		EmployeeID: cleaner.EmployeeID,
		Blocks:     decodeBlockSet(cleaner.AssignedBlocks),
	}

	s.db.WithContext(ctx).Table("requests").
		Where("cleaner_id = ? AND status = ?", cleanerID, domain.StatusCompleted).
		Count(&stats.TotalCleaned)

	s.db.WithContext(ctx).Table("requests").
		Where("cleaner_id = ? AND rating IS NOT NULL", cleanerID).
		Count(&stats.RatingCount)

	// COALESCE keeps the zero-ratings case at 0 instead of NULL
	s.db.WithContext(ctx).Table("requests").
		Where("cleaner_id = ? AND rating IS NOT NULL", cleanerID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&stats.AvgRating)

	var history []struct {
		ID          uint
		Type        string
		CompletedAt *time.Time
		Rating      *int
		StudentName string
		RoomNumber  string
	}
	s.db.WithContext(ctx).Table("requests").
		Select("requests.id, requests.type, requests.completed_at, requests.rating, users.name as student_name, users.room_number").
		Joins("LEFT JOIN users ON requests.user_id = users.id").
		Where("requests.cleaner_id = ? AND requests.status = ?", cleanerID, domain.StatusCompleted).
		Order("requests.completed_at DESC").
		Limit(5).
		Scan(&history)

	stats.History = make([]CleanerJob, len(history))
	for i, h := range history {
		stats.History[i] = CleanerJob{
			ID:      h.ID,
			Type:    h.Type,
			Date:    h.CompletedAt,
			Rating:  h.Rating,
			Student: h.StudentName,
			Room:    h.RoomNumber,
		}
	}

	return stats, nil
}

// decodeBlockSet decodes the stored assigned-blocks JSON into a string set
func decodeBlockSet(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var blocks []string
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return []string{}
	}
	return blocks
}
