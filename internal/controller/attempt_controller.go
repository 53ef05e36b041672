package controller

import (
	"edutrack_backend/internal/service"
	"edutrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

type AnswerRequest struct {
	SelectedIndex *int `json:"selected_index" binding:"required,min=0,max=3"`
}

// @Summary Start attempt
// @Description Starts a new in-progress attempt; earlier attempts are kept
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/student/quizzes/{id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	id, ok := util.GetIdentity(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	attemptID, err := c.AttemptService.StartAttempt(ctx.Request.Context(), ctx.Param("id"), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"attempt_id": attemptID})
}

// @Summary Answer question
// @Description Records or replaces the answer for one question of an open attempt
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attempt ID"
// @Param questionId path string true "Question ID"
// @Param body body AnswerRequest true "Answer"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/student/attempts/{id}/answers/{questionId} [put]
func (c *AttemptController) AnswerQuestion(ctx *gin.Context) {
	if !c.ownsAttempt(ctx) {
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "selected_index must be between 0 and 3")
		return
	}

	if err := c.AttemptService.AnswerQuestion(ctx.Request.Context(), ctx.Param("id"), ctx.Param("questionId"), *req.SelectedIndex); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Submit attempt
// @Description Scores the recorded answers and closes the attempt
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} util.Response
// @Router /api/student/attempts/{id}/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	if !c.ownsAttempt(ctx) {
		return
	}

	score, err := c.AttemptService.SubmitAttempt(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"score": score})
}

// ownsAttempt writes the error response and returns false unless the caller started the attempt.
func (c *AttemptController) ownsAttempt(ctx *gin.Context) bool {
	id, ok := util.GetIdentity(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return false
	}

	attempt, err := c.AttemptService.GetAttempt(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return false
	}
	if attempt.StudentID != id.ID {
		util.Forbidden(ctx)
		return false
	}
	return true
}
