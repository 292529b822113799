package services

import (
	"context"
	"errors"

	"github.com/Sujal-Mishra/cleanvit/internal/adapters/persistence/repositories"
	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"

	"gorm.io/gorm"
)

// StudentService handles student-facing profile operations
type StudentService struct {
	studentRepo repositories.StudentRepository
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo repositories.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// Roommate represents a roommate entry
type Roommate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Roommates lists everyone sharing the student's group key, including the
// student themselves. A student without a group key has no roommates.
func (s *StudentService) Roommates(ctx context.Context, studentID uint) ([]Roommate, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if student.GroupNo == "" {
		return []Roommate{}, nil
	}

	students, err := s.studentRepo.ListByGroup(ctx, student.GroupNo)
	if err != nil {
		return nil, err
	}

	roommates := make([]Roommate, len(students))
	for i, st := range students {
		roommates[i] = Roommate{Name: st.Name, Email: st.Email}
	}
	return roommates, nil
}
