package controller

import (
	"edutrack_backend/internal/service"
	"edutrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// @Summary Quiz analytics
// @Description Score distribution, per-question success rates, completion times and recent submissions
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response{data=model.QuizAnalytics}
// @Failure 404 {object} util.Response
// @Router /api/teacher/quizzes/{id}/analytics [get]
func (c *AnalyticsController) GetQuizAnalytics(ctx *gin.Context) {
	analytics, err := c.AnalyticsService.GetQuizAnalytics(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, analytics)
}
