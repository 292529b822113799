package repositories

import (
	"context"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// cleanerRepository implements CleanerRepository
type cleanerRepository struct {
	db *gorm.DB
}

// NewCleanerRepository creates a new cleaner repository
func NewCleanerRepository(db *gorm.DB) CleanerRepository {
	return &cleanerRepository{db: db}
}

// Create creates a new cleaner
func (r *cleanerRepository) Create(ctx context.Context, cleaner *models.Cleaner) error {
	return r.db.WithContext(ctx).Create(cleaner).Error
}

// GetByID gets a cleaner by ID
func (r *cleanerRepository) GetByID(ctx context.Context, id uint) (*models.Cleaner, error) {
	var cleaner models.Cleaner
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cleaner).Error
	if err != nil {
		return nil, err
	}
	return &cleaner, nil
}

// GetActiveByEmployeeID gets an active cleaner by employee ID
func (r *cleanerRepository) GetActiveByEmployeeID(ctx context.Context, employeeID string) (*models.Cleaner, error) {
	var cleaner models.Cleaner
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND is_active = ?", employeeID, true).
		First(&cleaner).Error
	if err != nil {
		return nil, err
	}
	return &cleaner, nil
}

// ExistsByEmployeeID checks if employee ID exists
func (r *cleanerRepository) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Cleaner{}).
		Where("employee_id = ?", employeeID).Count(&count).Error
	return count > 0, err
}

// List lists cleaners with pagination, newest first
func (r *cleanerRepository) List(ctx context.Context, offset, limit int) ([]*models.Cleaner, int64, error) {
	var cleaners []*models.Cleaner
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Cleaner{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&cleaners).Error
	if err != nil {
		return nil, 0, err
	}

	return cleaners, total, nil
}
