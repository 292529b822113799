package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/models"
	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/repositories"
	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/qr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProofVerifier extracts an identifier from uploaded proof image bytes
type ProofVerifier interface {
	Extract(imageBytes []byte) (string, error)
}

// RequestService owns the cleaning-request lifecycle. It is the only
// component that mutates status, cleaner assignment and the lifecycle
// timestamps; all transitions go through the repository's conditional
// updates so the datastore arbitrates races.
type RequestService struct {
	requestRepo repositories.RequestRepository
	studentRepo repositories.StudentRepository
	cleanerRepo repositories.CleanerRepository
	verifier    ProofVerifier
}

// NewRequestService creates a new request service
func NewRequestService(
	requestRepo repositories.RequestRepository,
	studentRepo repositories.StudentRepository,
	cleanerRepo repositories.CleanerRepository,
	verifier ProofVerifier,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		studentRepo: studentRepo,
		cleanerRepo: cleanerRepo,
		verifier:    verifier,
	}
}

// CreateRequestInput represents create request input
type CreateRequestInput struct {
	Type         string `json:"type" validate:"required"`
	Instructions string `json:"instructions"`
}

// Create allocates a request identifier, generates the QR proof artifact
// and persists a pending request. Location fields are copied from the
// requester's current profile so listings never need a join for them.
func (s *RequestService) Create(ctx context.Context, studentID uint, input *CreateRequestInput) (*models.Request, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	requestID := NewRequestID()

	qrDataURI, err := qr.GenerateDataURI(requestID)
	if err != nil {
		return nil, err
	}

	request := &models.Request{
		RequestID:    requestID,
		UserID:       student.ID,
		Block:        student.Block,
		RoomNumber:   student.RoomNumber,
		GroupNo:      student.GroupNo,
		Type:         input.Type,
		Instructions: input.Instructions,
		QRCode:       qrDataURI,
		Status:       domain.StatusPending,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	log.Printf("✅ Request created: %s (block %s, room %s)", requestID, request.Block, request.RoomNumber)
	return request, nil
}

// ListForStudent lists requests visible to a student: everything in the
// student's roommate group, or only their own requests when no group key
// is set.
func (s *RequestService) ListForStudent(ctx context.Context, studentID uint) ([]*models.Request, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if student.GroupNo != "" {
		return s.requestRepo.ListByGroup(ctx, student.GroupNo)
	}
	return s.requestRepo.ListByUser(ctx, studentID)
}

// ListForCleaner lists the cleaner's accepted and completed jobs,
// newest-accepted first
func (s *RequestService) ListForCleaner(ctx context.Context, cleanerID uint) ([]*models.Request, error) {
	return s.requestRepo.ListByCleaner(ctx, cleanerID)
}

// ListPending lists pending requests in the cleaner's assigned blocks,
// oldest first. A cleaner with no assigned blocks sees an empty list.
func (s *RequestService) ListPending(ctx context.Context, cleanerID uint) ([]*models.Request, error) {
	cleaner, err := s.activeCleaner(ctx, cleanerID)
	if err != nil {
		return nil, err
	}
	return s.requestRepo.ListPendingInBlocks(ctx, []string(cleaner.AssignedBlocks))
}

// Accept transitions a pending request to in_progress for the calling
// cleaner. The request's block must be covered by the cleaner's assigned
// blocks, and the transition is conditioned on the request still being
// pending: of two racing cleaners exactly one succeeds.
func (s *RequestService) Accept(ctx context.Context, requestRowID, cleanerID uint) (*models.Request, error) {
	cleaner, err := s.activeCleaner(ctx, cleanerID)
	if err != nil {
		return nil, err
	}

	request, err := s.getRequest(ctx, requestRowID)
	if err != nil {
		return nil, err
	}

	if !cleaner.CoversBlock(request.Block) {
		return nil, domain.ErrOutOfScope
	}

	rows, err := s.requestRepo.AcceptPending(ctx, request.ID, cleaner.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrInvalidTransition
	}

	log.Printf("✅ Request %s accepted by cleaner %s", request.RequestID, cleaner.EmployeeID)
	return s.getRequest(ctx, request.ID)
}

// CompleteManual completes an in-progress request using a manually entered
// proof string, which must exactly equal the request's identifier.
func (s *RequestService) CompleteManual(ctx context.Context, requestRowID, cleanerID uint, submittedProof string) (*models.Request, error) {
	request, err := s.getRequest(ctx, requestRowID)
	if err != nil {
		return nil, err
	}

	if request.CleanerID == nil || *request.CleanerID != cleanerID {
		return nil, domain.ErrUnauthorized
	}

	if submittedProof != request.RequestID {
		return nil, domain.ErrProofMismatch
	}

	return s.complete(ctx, request, cleanerID)
}

// CompleteByScan completes an in-progress request by decoding an uploaded
// photo of the proof artifact and verifying the embedded identifier.
func (s *RequestService) CompleteByScan(ctx context.Context, requestRowID, cleanerID uint, imageBytes []byte) (*models.Request, error) {
	payload, err := s.verifier.Extract(imageBytes)
	if err != nil {
		return nil, err
	}

	request, err := s.getRequest(ctx, requestRowID)
	if err != nil {
		return nil, err
	}

	if payload != request.RequestID {
		return nil, domain.ErrProofMismatch
	}

	if request.Status != domain.StatusInProgress {
		return nil, domain.ErrInvalidTransition
	}

	if request.CleanerID == nil || *request.CleanerID != cleanerID {
		return nil, domain.ErrUnauthorized
	}

	return s.complete(ctx, request, cleanerID)
}

// RateInput represents rating input
type RateInput struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

// Rate sets rating and feedback on a completed request. Only the original
// requester may rate; repeated calls overwrite the previous values.
func (s *RequestService) Rate(ctx context.Context, requestRowID, studentID uint, input *RateInput) error {
	if input.Rating < 1 || input.Rating > 5 {
		return domain.ErrInvalidRating
	}

	request, err := s.getRequest(ctx, requestRowID)
	if err != nil {
		return err
	}

	if request.UserID != studentID {
		return domain.ErrUnauthorized
	}

	rows, err := s.requestRepo.SetRating(ctx, request.ID, input.Rating, input.Feedback)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInvalidTransition
	}

	return nil
}

func (s *RequestService) complete(ctx context.Context, request *models.Request, cleanerID uint) (*models.Request, error) {
	rows, err := s.requestRepo.CompleteInProgress(ctx, request.ID, cleanerID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrInvalidTransition
	}

	log.Printf("✅ Request %s verified and completed", request.RequestID)
	return s.getRequest(ctx, request.ID)
}

func (s *RequestService) getRequest(ctx context.Context, id uint) (*models.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

func (s *RequestService) activeCleaner(ctx context.Context, cleanerID uint) (*models.Cleaner, error) {
	cleaner, err := s.cleanerRepo.GetByID(ctx, cleanerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !cleaner.IsActive {
		return nil, domain.ErrCleanerInactive
	}
	return cleaner, nil
}

// NewRequestID allocates a human-legible request identifier:
// "REQ-" followed by 8 uppercase hex characters of a fresh UUID.
func NewRequestID() string {
	return "REQ-" + strings.ToUpper(uuid.New().String()[:8])
}
