package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/studentsvc/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	systemController *controllers.SystemController,
) {
	router.GET("/", systemController.Home)
	router.GET("/ping", systemController.Ping)
	router.GET("/health", systemController.Health)

	// Collection and item routes keep the singular/plural split of the public API
	router.GET("/students", studentController.GetAllStudents)

	student := router.Group("/student")
	{
		student.POST("", studentController.CreateStudent)
		student.GET("/:id", studentController.GetStudentByID)
		student.PUT("/:id", studentController.UpdateStudent)
		student.DELETE("/:id", studentController.DeleteStudent)
	}
}
