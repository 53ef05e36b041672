package controller

import (
	"edutrack_backend/internal/service"
	"edutrack_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// @Summary List quizzes
// @Description Quizzes newest first with question count, submissions and average score
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.QuizWithStats}
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.QuizService.ListQuizzes(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// @Summary Get quiz questions
// @Description Questions in order. The correct index is only returned to teachers.
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	id, ok := util.GetIdentity(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	quizID := ctx.Param("id")
	if id.IsTeacher() {
		questions, err := c.QuizService.GetQuizQuestions(ctx.Request.Context(), quizID)
		if err != nil {
			respondError(ctx, err)
			return
		}
		util.Success(ctx, questions)
		return
	}

	questions, err := c.QuizService.GetStudentQuestions(ctx.Request.Context(), quizID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary Create quiz
// @Description Creates a quiz and its questions; per-question points are frozen at creation
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateQuizRequest true "Quiz"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/teacher/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	id, ok := util.GetIdentity(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	quizID, err := c.QuizService.CreateQuiz(ctx.Request.Context(), &req, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"quiz_id": quizID})
}

// @Summary Attempt statuses
// @Description One entry per quiz the caller has attempted; absent quizzes are not taken
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param quizIds query string true "Comma separated quiz IDs"
// @Success 200 {object} util.Response
// @Router /api/student/quiz-statuses [get]
func (c *QuizController) GetAttemptStatuses(ctx *gin.Context) {
	id, ok := util.GetIdentity(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	statuses, err := c.QuizService.GetAttemptStatuses(ctx.Request.Context(), splitIDs(ctx.Query("quizIds")), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, statuses)
}

func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
