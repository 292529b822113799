package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/models"
	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/repositories"
	"github.com/Sujal-Mishra/cleanvit/internal/config"
	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/jwt"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/password"

	"gorm.io/gorm"
)

// StudentEmailDomain is the only email domain accepted for signup
const StudentEmailDomain = "@vitstudent.ac.in"

const otpTTL = 10 * time.Minute

// AuthService handles authentication business logic for all three roles
type AuthService struct {
	studentRepo repositories.StudentRepository
	cleanerRepo repositories.CleanerRepository
	adminRepo   repositories.AdminRepository
	otpRepo     repositories.SignupOTPRepository
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	studentRepo repositories.StudentRepository,
	cleanerRepo repositories.CleanerRepository,
	adminRepo repositories.AdminRepository,
	otpRepo repositories.SignupOTPRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		cleanerRepo: cleanerRepo,
		adminRepo:   adminRepo,
		otpRepo:     otpRepo,
		cfg:         cfg,
	}
}

// SignupInput represents student signup input
type SignupInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required"`
	Block      string `json:"block" validate:"required"`
	RoomNumber string `json:"roomNumber" validate:"required"`
}

// StudentAuthResponse represents a student login/signup response
type StudentAuthResponse struct {
	Token   string                  `json:"token"`
	Student *models.StudentResponse `json:"user"`
}

// CleanerAuthResponse represents a cleaner login response
type CleanerAuthResponse struct {
	Token   string                  `json:"token"`
	Cleaner *models.CleanerResponse `json:"cleaner"`
}

// AdminAuthResponse represents an admin login response
type AdminAuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// SignupStudent registers a new student directly (no OTP)
func (s *AuthService) SignupStudent(ctx context.Context, input *SignupInput) (*models.Student, error) {
	if !strings.HasSuffix(input.Email, StudentEmailDomain) {
		return nil, domain.ErrInvalidEmailDomain
	}

	exists, err := s.studentRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		Email:      input.Email,
		Password:   hashed,
		Name:       input.Name,
		Block:      input.Block,
		RoomNumber: input.RoomNumber,
		GroupNo:    GroupKey(input.Block, input.RoomNumber),
		Role:       string(domain.RoleStudent),
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	log.Printf("✅ Student registered: %s (group %s)", student.Email, student.GroupNo)
	return student, nil
}

// RequestSignupOTP issues a short-lived signup OTP for an email address.
// The code is returned to the caller for delivery; delivery itself is out
// of scope here.
func (s *AuthService) RequestSignupOTP(ctx context.Context, email string) (string, error) {
	if !strings.HasSuffix(email, StudentEmailDomain) {
		return "", domain.ErrInvalidEmailDomain
	}

	exists, err := s.studentRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.ErrEmailTaken
	}

	code, err := generateOTPCode(6)
	if err != nil {
		return "", err
	}

	otp := &models.SignupOTP{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return "", err
	}

	return code, nil
}

// VerifySignupOTP consumes a signup OTP and creates the student account
func (s *AuthService) VerifySignupOTP(ctx context.Context, code string, input *SignupInput) (*models.Student, error) {
	otp, err := s.otpRepo.GetLatestUnused(ctx, input.Email, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidOTP
		}
		return nil, err
	}
	if otp.IsExpired() {
		return nil, domain.ErrInvalidOTP
	}

	student, err := s.SignupStudent(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.otpRepo.MarkUsed(ctx, otp.ID); err != nil {
		return nil, err
	}

	return student, nil
}

// LoginStudent authenticates a student by email and password
func (s *AuthService) LoginStudent(ctx context.Context, email, pass string) (*StudentAuthResponse, error) {
	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(pass, student.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateStudentToken(
		student.ID, student.Email, student.Block, student.RoomNumber, student.GroupNo,
		s.cfg.JWT.Secret, s.cfg.JWT.ExpiryHours,
	)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Student logged in: %s", student.Email)
	return &StudentAuthResponse{Token: token, Student: student.ToResponse()}, nil
}

// LoginCleaner authenticates an active cleaner by employee ID and password
func (s *AuthService) LoginCleaner(ctx context.Context, employeeID, pass string) (*CleanerAuthResponse, error) {
	cleaner, err := s.cleanerRepo.GetActiveByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(pass, cleaner.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateCleanerToken(
		cleaner.ID, cleaner.EmployeeID, []string(cleaner.AssignedBlocks),
		s.cfg.JWT.Secret, s.cfg.JWT.ExpiryHours,
	)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Cleaner logged in: %s", cleaner.EmployeeID)
	return &CleanerAuthResponse{Token: token, Cleaner: cleaner.ToResponse()}, nil
}

// LoginAdmin authenticates an admin by username and password
func (s *AuthService) LoginAdmin(ctx context.Context, username, pass string) (*AdminAuthResponse, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(pass, admin.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateAdminToken(admin.ID, admin.Username, s.cfg.JWT.Secret, s.cfg.JWT.ExpiryHours)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Admin logged in: %s", admin.Username)
	return &AdminAuthResponse{Token: token, Username: admin.Username}, nil
}

// GroupKey derives the roommate group key from a block and room number
func GroupKey(block, roomNumber string) string {
	return fmt.Sprintf("%s-%s", block, roomNumber)
}

// generateOTPCode generates a cryptographically random numeric code
func generateOTPCode(digits int) (string, error) {
	var sb strings.Builder
	for i := 0; i < digits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteString(n.String())
	}
	return sb.String(), nil
}
