package services

import (
	"context"
	"log"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/models"
	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/repositories"
	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/password"

	"gorm.io/datatypes"
)

// AdminService handles the cleaner roster managed by administrators
type AdminService struct {
	cleanerRepo repositories.CleanerRepository
}

// NewAdminService creates a new admin service
func NewAdminService(cleanerRepo repositories.CleanerRepository) *AdminService {
	return &AdminService{cleanerRepo: cleanerRepo}
}

// AddCleanerInput represents add-cleaner input
type AddCleanerInput struct {
	EmployeeID string   `json:"employeeId" validate:"required"`
	Name       string   `json:"name" validate:"required"`
	Password   string   `json:"password" validate:"required,min=8"`
	Blocks     []string `json:"blocks"`
}

// AddCleaner registers a new active cleaner with an assigned-blocks set
func (s *AdminService) AddCleaner(ctx context.Context, input *AddCleanerInput) (*models.Cleaner, error) {
	exists, err := s.cleanerRepo.ExistsByEmployeeID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	blocks := input.Blocks
	if blocks == nil {
		blocks = []string{}
	}

	cleaner := &models.Cleaner{
		EmployeeID:     input.EmployeeID,
		Name:           input.Name,
		Password:       hashed,
		AssignedBlocks: datatypes.NewJSONSlice(blocks),
		IsActive:       true,
	}

	if err := s.cleanerRepo.Create(ctx, cleaner); err != nil {
		return nil, err
	}

	log.Printf("✅ Cleaner added: %s (blocks %v)", cleaner.EmployeeID, blocks)
	return cleaner, nil
}

// ListCleaners lists the cleaner roster, newest first
func (s *AdminService) ListCleaners(ctx context.Context, offset, limit int) ([]*models.Cleaner, int64, error) {
	return s.cleanerRepo.List(ctx, offset, limit)
}
