package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/studentsvc/internal/app/models"
	"github.com/yigit/studentsvc/internal/app/repositories"
	"github.com/yigit/studentsvc/internal/pkg/apperrors"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	ListStudents(ctx context.Context) ([]*models.Student, error)
	CreateStudent(ctx context.Context, student *models.Student) (int64, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id int64) error
}

// StudentStore is the persistence contract the service depends on
type StudentStore interface {
	ListStudents(ctx context.Context) ([]*models.Student, error)
	CreateStudent(ctx context.Context, student *models.Student) (int64, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) (int64, error)
	DeleteStudent(ctx context.Context, id int64) (int64, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	store  StudentStore
	logger zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(store StudentStore, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		store:  store,
		logger: logger.With().Str("service", "students").Logger(),
	}
}

// ListStudents retrieves all students
func (s *studentServiceImpl) ListStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// CreateStudent stores a new student and returns its id
func (s *studentServiceImpl) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	if student == nil {
		return 0, apperrors.NewValidationError("student is nil")
	}

	id, err := s.store.CreateStudent(ctx, student)
	if err != nil {
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	s.logger.Debug().Int64("studentID", id).Msg("Student created")
	return id, nil
}

// GetStudent retrieves a student by ID
func (s *studentServiceImpl) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.store.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// UpdateStudent overwrites a student. Updating a missing id succeeds silently.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, student *models.Student) error {
	if student == nil {
		return apperrors.NewValidationError("student is nil")
	}

	affected, err := s.store.UpdateStudent(ctx, student)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if affected == 0 {
		s.logger.Debug().Int64("studentID", student.ID).Msg("Update matched no student")
	}
	return nil
}

// DeleteStudent removes a student. Deleting a missing id succeeds silently.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	affected, err := s.store.DeleteStudent(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if affected == 0 {
		s.logger.Debug().Int64("studentID", id).Msg("Delete matched no student")
	}
	return nil
}
