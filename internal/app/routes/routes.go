package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/meric/studentbase/internal/app/controllers"
	"github.com/meric/studentbase/internal/app/models"
	"github.com/meric/studentbase/internal/app/models/dto"
	"github.com/meric/studentbase/internal/middleware"
)

// SetupRouter configures all application routes. The paths are the wire
// contract: form endpoints at the root, structured ones under /api.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Public routes ---
	router.POST("/register", authController.RegisterForm)
	router.POST("/login", authController.LoginForm)
	router.GET("/logout", authController.Logout)

	api := router.Group("/api")
	api.POST("/register", authController.RegisterAPI)
	api.POST("/login", authController.LoginAPI)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/profile", authController.Profile)
		authenticated.GET("/stats", studentController.Stats)

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.List)
			students.GET("/:id", studentController.Get)
			students.POST("", studentController.Create)

			// Mutations are admin-only; ownership plays no part.
			studentsAdminProtected := students.Group("")
			studentsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				studentsAdminProtected.PUT("/:id", studentController.Update)
				studentsAdminProtected.DELETE("/:id", studentController.Delete)
			}
		}
	}

	// Health check endpoint (public)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
