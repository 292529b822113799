package repositories

import (
	"context"
	"time"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/models"
	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"
)

// StudentRepository defines student data access
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByGroup(ctx context.Context, groupNo string) ([]*models.Student, error)
}

// CleanerRepository defines cleaner data access
type CleanerRepository interface {
	Create(ctx context.Context, cleaner *models.Cleaner) error
	GetByID(ctx context.Context, id uint) (*models.Cleaner, error)
	GetActiveByEmployeeID(ctx context.Context, employeeID string) (*models.Cleaner, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*models.Cleaner, int64, error)
}

// AdminRepository defines admin data access
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// RequestRepository defines cleaning-request data access. The datastore is
// the sole arbiter of concurrent mutation: every state transition is a
// conditional update on the current status, and callers must treat a zero
// affected-row count as a failed precondition.
type RequestRepository interface {
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, id uint) (*models.Request, error)
	ListByGroup(ctx context.Context, groupNo string) ([]*models.Request, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Request, error)
	ListByCleaner(ctx context.Context, cleanerID uint) ([]*models.Request, error)
	ListPendingInBlocks(ctx context.Context, blocks []string) ([]*models.Request, error)

	// AcceptPending transitions pending -> in_progress iff the request is
	// still pending. Returns the number of rows updated (0 or 1).
	AcceptPending(ctx context.Context, id, cleanerID uint, acceptedAt time.Time) (int64, error)

	// CompleteInProgress transitions in_progress -> completed iff the
	// request is in progress and assigned to cleanerID.
	CompleteInProgress(ctx context.Context, id, cleanerID uint, completedAt time.Time) (int64, error)

	// SetRating overwrites rating/feedback iff the request is completed.
	SetRating(ctx context.Context, id uint, rating int, feedback string) (int64, error)
}

// SignupOTPRepository defines signup OTP data access
type SignupOTPRepository interface {
	Create(ctx context.Context, otp *models.SignupOTP) error
	GetLatestUnused(ctx context.Context, email, code string) (*models.SignupOTP, error)
	MarkUsed(ctx context.Context, id uint) error
}

// compile-time interface checks
var (
	_ StudentRepository   = (*studentRepository)(nil)
	_ CleanerRepository   = (*cleanerRepository)(nil)
	_ AdminRepository     = (*adminRepository)(nil)
	_ RequestRepository   = (*requestRepository)(nil)
	_ SignupOTPRepository = (*signupOTPRepository)(nil)
)

// cleaner list statuses surfaced to the cleaner dashboard
var cleanerVisibleStatuses = []domain.RequestStatus{
	domain.StatusInProgress,
	domain.StatusCompleted,
}
