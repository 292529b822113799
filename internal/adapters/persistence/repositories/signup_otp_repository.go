package repositories

import (
	"context"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// signupOTPRepository implements SignupOTPRepository
type signupOTPRepository struct {
	db *gorm.DB
}

// NewSignupOTPRepository creates a new signup OTP repository
func NewSignupOTPRepository(db *gorm.DB) SignupOTPRepository {
	return &signupOTPRepository{db: db}
}

// Create creates a new signup OTP
func (r *signupOTPRepository) Create(ctx context.Context, otp *models.SignupOTP) error {
	return r.db.WithContext(ctx).Create(otp).Error
}

// GetLatestUnused gets the most recent unused OTP matching email and code
func (r *signupOTPRepository) GetLatestUnused(ctx context.Context, email, code string) (*models.SignupOTP, error) {
	var otp models.SignupOTP
	err := r.db.WithContext(ctx).
		Where("email = ? AND code = ? AND used = ?", email, code, false).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

// MarkUsed marks an OTP as consumed
func (r *signupOTPRepository) MarkUsed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.SignupOTP{}).
		Where("id = ?", id).
		Update("used", true).Error
}
