package repositories

import (
	"context"
	"time"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/models"
	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"

	"gorm.io/gorm"
)

// requestRepository implements RequestRepository
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// Create creates a new request
func (r *requestRepository) Create(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// GetByID gets a request by its row ID
func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.Request, error) {
	var request models.Request
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListByGroup lists all requests sharing a group key, newest first
func (r *requestRepository) ListByGroup(ctx context.Context, groupNo string) ([]*models.Request, error) {
	var requests []*models.Request
	err := r.db.WithContext(ctx).
		Where("group_no = ?", groupNo).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListByUser lists a single student's requests, newest first
func (r *requestRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Request, error) {
	var requests []*models.Request
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListByCleaner lists a cleaner's accepted and completed jobs, newest
// accepted first, with the requester preloaded for display names
func (r *requestRepository) ListByCleaner(ctx context.Context, cleanerID uint) ([]*models.Request, error) {
	var requests []*models.Request
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("cleaner_id = ? AND status IN ?", cleanerID, cleanerVisibleStatuses).
		Order("accepted_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListPendingInBlocks lists pending requests whose block is in the given
// set, oldest first so the earliest-raised requests are surfaced first
func (r *requestRepository) ListPendingInBlocks(ctx context.Context, blocks []string) ([]*models.Request, error) {
	if len(blocks) == 0 {
		return []*models.Request{}, nil
	}

	var requests []*models.Request
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("status = ? AND block IN ?", domain.StatusPending, blocks).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

// AcceptPending performs the compare-and-set accept. The WHERE clause on
// the current status makes the datastore the arbiter when two cleaners
// race: exactly one update matches, the other sees zero rows.
func (r *requestRepository) AcceptPending(ctx context.Context, id, cleanerID uint, acceptedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Updates(map[string]interface{}{
			"status":      domain.StatusInProgress,
			"cleaner_id":  cleanerID,
			"accepted_at": acceptedAt,
		})
	return result.RowsAffected, result.Error
}

// CompleteInProgress performs the compare-and-set completion, conditioned
// on both the current status and the assigned cleaner
func (r *requestRepository) CompleteInProgress(ctx context.Context, id, cleanerID uint, completedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("id = ? AND status = ? AND cleaner_id = ?", id, domain.StatusInProgress, cleanerID).
		Updates(map[string]interface{}{
			"status":       domain.StatusCompleted,
			"completed_at": completedAt,
			"completed_by": cleanerID,
		})
	return result.RowsAffected, result.Error
}

// SetRating overwrites rating and feedback on a completed request.
// Repeated calls overwrite: the final state is the last caller's values.
func (r *requestRepository) SetRating(ctx context.Context, id uint, rating int, feedback string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("id = ? AND status = ?", id, domain.StatusCompleted).
		Updates(map[string]interface{}{
			"rating":   rating,
			"feedback": feedback,
		})
	return result.RowsAffected, result.Error
}
