package app

import (
	"edutrack_backend/docs"
	"edutrack_backend/internal/config"
	"edutrack_backend/internal/middleware"
	"edutrack_backend/internal/model"
	"edutrack_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public
	router.GET("/api/health", c.health.HealthCheck)

	// Authenticated
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerSharedRoutes(authGroup, c)
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

// registerSharedRoutes serves both dashboards.
func (a *App) registerSharedRoutes(r *gin.RouterGroup, c *controllers) {
	r.GET("/quizzes", c.quiz.ListQuizzes)
	r.GET("/quizzes/:id/questions", c.quiz.GetQuestions)
	r.GET("/resources", c.resource.ListResources)
	r.GET("/resources/url", c.resource.GetURL)
	r.POST("/ai/generate", c.ai.Generate)
}

func (a *App) registerStudentRoutes(r *gin.RouterGroup, c *controllers) {
	student := r.Group("/student")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/quiz-statuses", c.quiz.GetAttemptStatuses)
		student.POST("/quizzes/:id/attempts", c.attempt.StartAttempt)
		student.PUT("/attempts/:id/answers/:questionId", c.attempt.AnswerQuestion)
		student.POST("/attempts/:id/submit", c.attempt.SubmitAttempt)
	}
}

func (a *App) registerTeacherRoutes(r *gin.RouterGroup, c *controllers) {
	teacher := r.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/quizzes", c.quiz.CreateQuiz)
		teacher.GET("/quizzes/:id/analytics", c.analytics.GetQuizAnalytics)
		teacher.POST("/resources", c.resource.UploadResource)
		teacher.POST("/ai/tools/:tool", c.ai.RunTeacherTool)
	}
}
