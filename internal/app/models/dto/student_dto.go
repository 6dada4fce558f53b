package dto

import "github.com/yigit/studentsvc/internal/app/models"

// Static messages returned by the write endpoints
const (
	MessageStudentAdded   = "Student added successfully!"
	MessageStudentUpdated = "Student updated successfully!"
	MessageStudentDeleted = "Student deleted successfully!"
)

// StudentRequest is the body accepted by create and update. Every field is
// required; pointers keep zero ages and grades distinguishable from absent ones.
type StudentRequest struct {
	Name           *string  `json:"name" binding:"required" example:"John Doe"`
	Age            *int     `json:"age" binding:"required" example:"20"`
	Semester1Grade *float64 `json:"semester1_grade" binding:"required" example:"8.5"`
	Semester2Grade *float64 `json:"semester2_grade" binding:"required" example:"7.5"`
	TeacherName    *string  `json:"teacher_name" binding:"required" example:"Mr. Smith"`
	RoomNumber     *string  `json:"room_number" binding:"required" example:"A101"`
}

// ToModel converts a bound request into a Student with the given id.
// It must only be called after binding succeeded.
func (r *StudentRequest) ToModel(id int64) *models.Student {
	return &models.Student{
		ID:             id,
		Name:           *r.Name,
		Age:            *r.Age,
		Semester1Grade: *r.Semester1Grade,
		Semester2Grade: *r.Semester2Grade,
		TeacherName:    *r.TeacherName,
		RoomNumber:     *r.RoomNumber,
	}
}

// NewStudentRequest builds a request from a model, used by clients and tests
func NewStudentRequest(s *models.Student) *StudentRequest {
	return &StudentRequest{
		Name:           &s.Name,
		Age:            &s.Age,
		Semester1Grade: &s.Semester1Grade,
		Semester2Grade: &s.Semester2Grade,
		TeacherName:    &s.TeacherName,
		RoomNumber:     &s.RoomNumber,
	}
}

// StudentCreatedResponse is returned by POST /student
type StudentCreatedResponse struct {
	Message string `json:"message" example:"Student added successfully!"`
	ID      int64  `json:"id" example:"1"`
}
