package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/studentsvc/internal/app/models"
	"github.com/yigit/studentsvc/internal/pkg/dberrors"
	"github.com/yigit/studentsvc/internal/pkg/logger"
)

const studentsTable = "students"

// studentColumns is the canonical column order used by every SELECT
var studentColumns = []string{
	"id", "name", "age", "semester1_grade", "semester2_grade", "teacher_name", "room_number",
}

// ErrNotFound is returned when a lookup by primary key matches no row
var ErrNotFound = errors.New("record not found")

// Querier is the part of *pgxpool.Pool the repositories use
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db Querier) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row, student *models.Student) error {
	return row.Scan(
		&student.ID,
		&student.Name,
		&student.Age,
		&student.Semester1Grade,
		&student.Semester2Grade,
		&student.TeacherName,
		&student.RoomNumber,
	)
}

// ListStudents returns every row. No ordering is applied.
func (r *StudentRepository) ListStudents(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From(studentsTable).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", dberrors.Wrap(err))
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student := &models.Student{}
		if err := scanStudent(rows, student); err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", dberrors.Wrap(err))
	}

	return students, nil
}

// CreateStudent inserts a student and returns the database-assigned id
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert(studentsTable).
		Columns("name", "age", "semester1_grade", "semester2_grade", "teacher_name", "room_number").
		Values(student.Name, student.Age, student.Semester1Grade, student.Semester2Grade, student.TeacherName, student.RoomNumber).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", dberrors.Wrap(err))
	}

	return id, nil
}

// GetStudentByID retrieves a student by ID, or ErrNotFound
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From(studentsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{}
	if err := scanStudent(r.db.QueryRow(ctx, sql, args...), student); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", dberrors.Wrap(err))
	}

	return student, nil
}

// UpdateStudent overwrites every column of the row with student.ID.
// It returns the number of rows touched; zero is not an error.
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Update(studentsTable).
		Set("name", student.Name).
		Set("age", student.Age).
		Set("semester1_grade", student.Semester1Grade).
		Set("semester2_grade", student.Semester2Grade).
		Set("teacher_name", student.TeacherName).
		Set("room_number", student.RoomNumber).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return 0, fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return 0, fmt.Errorf("error updating student: %w", dberrors.Wrap(err))
	}

	return cmdTag.RowsAffected(), nil
}

// DeleteStudent removes the row with the given id.
// It returns the number of rows removed; zero is not an error.
func (r *StudentRepository) DeleteStudent(ctx context.Context, id int64) (int64, error) {
	sql, args, err := r.sb.Delete(studentsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return 0, fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return 0, fmt.Errorf("error deleting student: %w", dberrors.Wrap(err))
	}

	return cmdTag.RowsAffected(), nil
}
