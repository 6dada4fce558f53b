package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/yigit/studentsvc/docs" // registers the swagger document
)

// SwaggerIndex is the URL of the Swagger UI
const SwaggerIndex = "/swagger/index.html"

// SetupSwagger configures Swagger documentation routes
func SetupSwagger(router *gin.Engine) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"),
		ginSwagger.DefaultModelsExpandDepth(1),
	))

	// legacy docs location
	router.GET("/apidocs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, SwaggerIndex)
	})
}
