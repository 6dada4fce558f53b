package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentsvc/internal/app/models/dto"
	"github.com/yigit/studentsvc/internal/app/services"
	"github.com/yigit/studentsvc/internal/middleware"
)

// StudentController handles student record endpoints
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// GetAllStudents retrieves all students
// @Summary Retrieve a list of students
// @Description Returns every stored student. The order is not guaranteed.
// @Tags students
// @Produce json
// @Success 200 {array} models.Student "A list of students"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// CreateStudent handles student creation
// @Summary Add a new student
// @Description Stores a student. All fields are required; the generated id is returned with the message.
// @Tags students
// @Accept json
// @Produce json
// @Param body body dto.StudentRequest true "JSON object containing student details"
// @Success 200 {object} dto.StudentCreatedResponse "Student added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req, "Invalid student data") {
		return
	}

	id, err := c.studentService.CreateStudent(ctx.Request.Context(), req.ToModel(0))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StudentCreatedResponse{
		Message: dto.MessageStudentAdded,
		ID:      id,
	})
}

// GetStudentByID retrieves a student by ID
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64)
// @Success 200 {object} models.Student "Student found successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.MessageResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// UpdateStudent overwrites an existing student
// @Summary Update an existing student
// @Description Overwrites every field. Succeeds even when no student has the given id.
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "The ID of the student to update" Format(int64)
// @Param body body dto.StudentRequest true "JSON object containing the student details to update"
// @Success 200 {object} dto.MessageResponse "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req, "Invalid student data") {
		return
	}

	if err := c.studentService.UpdateStudent(ctx.Request.Context(), req.ToModel(id)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse(dto.MessageStudentUpdated))
}

// DeleteStudent deletes a student
// @Summary Delete a student
// @Description Succeeds even when no student has the given id.
// @Tags students
// @Produce json
// @Param id path int true "The ID of the student to delete" Format(int64)
// @Success 200 {object} dto.MessageResponse "Student deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse(dto.MessageStudentDeleted))
}
