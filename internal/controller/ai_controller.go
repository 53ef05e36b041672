package controller

import (
	"edutrack_backend/internal/service"
	"edutrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	AIService *service.AIService
}

func NewAIController(aiService *service.AIService) *AIController {
	return &AIController{AIService: aiService}
}

type GenerateRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context"`
}

type TeacherToolRequest struct {
	Request string `json:"request"`
	Content string `json:"content"`
}

// @Summary Generate text
// @Description Sends the prompt, prefixed with the caller's role, to the configured text provider
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GenerateRequest true "Prompt"
// @Success 200 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/ai/generate [post]
func (c *AIController) Generate(ctx *gin.Context) {
	id, ok := util.GetIdentity(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	var req GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	text, err := c.AIService.GenerateWithContext(ctx.Request.Context(), req.Prompt, id.Role, req.Context)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"text": text})
}

// @Summary Teacher AI tool
// @Description Runs a preset tool (quiz, summarize, enhance) over the given content
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tool path string true "Tool" Enums(quiz, summarize, enhance)
// @Param body body TeacherToolRequest true "Request"
// @Success 200 {object} util.Response
// @Router /api/teacher/ai/tools/{tool} [post]
func (c *AIController) RunTeacherTool(ctx *gin.Context) {
	var req TeacherToolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	text, err := c.AIService.RunTeacherTool(ctx.Request.Context(), ctx.Param("tool"), req.Request, req.Content)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"text": text})
}
