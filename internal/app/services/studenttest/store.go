// Package studenttest provides an in-memory StudentStore for tests.
package studenttest

import (
	"context"
	"sync"

	"github.com/yigit/studentsvc/internal/app/models"
	"github.com/yigit/studentsvc/internal/app/repositories"
)

// Store keeps students in a map and hands out ids like a BIGSERIAL column
type Store struct {
	mu       sync.Mutex
	nextID   int64
	students map[int64]models.Student

	// Err, when set, is returned by every method
	Err error
	// Calls counts invocations, keyed by method name
	Calls map[string]int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		nextID:   1,
		students: map[int64]models.Student{},
		Calls:    map[string]int{},
	}
}

func (s *Store) enter(method string) error {
	s.Calls[method]++
	return s.Err
}

func (s *Store) ListStudents(ctx context.Context) ([]*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListStudents"); err != nil {
		return nil, err
	}

	students := make([]*models.Student, 0, len(s.students))
	for _, student := range s.students {
		student := student
		students = append(students, &student)
	}
	return students, nil
}

func (s *Store) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateStudent"); err != nil {
		return 0, err
	}

	id := s.nextID
	s.nextID++
	stored := *student
	stored.ID = id
	s.students[id] = stored
	return id, nil
}

func (s *Store) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetStudentByID"); err != nil {
		return nil, err
	}

	student, ok := s.students[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &student, nil
}

func (s *Store) UpdateStudent(ctx context.Context, student *models.Student) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateStudent"); err != nil {
		return 0, err
	}

	if _, ok := s.students[student.ID]; !ok {
		return 0, nil
	}
	s.students[student.ID] = *student
	return 1, nil
}

func (s *Store) DeleteStudent(ctx context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeleteStudent"); err != nil {
		return 0, err
	}

	if _, ok := s.students[id]; !ok {
		return 0, nil
	}
	delete(s.students, id)
	return 1, nil
}

// Len returns the number of stored students
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.students)
}
