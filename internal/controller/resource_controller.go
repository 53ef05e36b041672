package controller

import (
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/service"
	"edutrack_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type ResourceController struct {
	ResourceService *service.ResourceService
}

func NewResourceController(resourceService *service.ResourceService) *ResourceController {
	return &ResourceController{ResourceService: resourceService}
}

// @Summary List resources
// @Description Newest first, filtered by title search, subject and difficulty ("all" disables a filter)
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param query query string false "Title search"
// @Param subject query string false "Subject"
// @Param difficulty query string false "Difficulty"
// @Success 200 {object} util.Response{data=[]model.Resource}
// @Router /api/resources [get]
func (c *ResourceController) ListResources(ctx *gin.Context) {
	var q model.ResourceQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		util.BadRequest(ctx, "Invalid query")
		return
	}

	resources, err := c.ResourceService.ListResources(ctx.Request.Context(), q)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resources)
}

// @Summary Resource URL
// @Description Resolves a stored file path to its public URL
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param path query string true "Stored file path"
// @Success 200 {object} util.Response
// @Router /api/resources/url [get]
func (c *ResourceController) GetURL(ctx *gin.Context) {
	path := ctx.Query("path")
	if path == "" {
		util.BadRequest(ctx, "path is required")
		return
	}
	util.Success(ctx, gin.H{"url": c.ResourceService.PublicURL(path)})
}

// @Summary Upload resource
// @Description Uploads a file up to 20MB and records it in the library
// @Tags teacher
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param subject formData string true "Subject"
// @Param difficulty formData string true "Difficulty"
// @Param tags formData string false "Comma separated tags"
// @Success 201 {object} util.Response{data=model.Resource}
// @Failure 413 {object} util.Response
// @Router /api/teacher/resources [post]
func (c *ResourceController) UploadResource(ctx *gin.Context) {
	id, ok := util.GetIdentity(ctx)
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	meta := service.UploadMetadata{
		Title:       ctx.PostForm("title"),
		Description: ctx.PostForm("description"),
		Subject:     model.SubjectTag(ctx.PostForm("subject")),
		Difficulty:  model.DifficultyTag(ctx.PostForm("difficulty")),
		Tags:        splitTags(ctx.PostForm("tags")),
	}

	// reject before reading the body
	if header.Size > util.MaxUploadSize {
		respondError(ctx, util.ErrFileTooLarge)
		return
	}

	f, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer f.Close()

	resource, err := c.ResourceService.UploadResource(ctx.Request.Context(), service.UploadFile{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      f,
	}, meta, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, resource)
}

func splitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
