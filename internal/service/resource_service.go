package service

import (
	"context"
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/util"
	"edutrack_backend/pkg/logger"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

type ResourceService struct {
	Resources ResourceStore
	Storage   *StorageService

	Now func() time.Time
}

func NewResourceService(resources ResourceStore, storage *StorageService) *ResourceService {
	return &ResourceService{
		Resources: resources,
		Storage:   storage,
		Now:       time.Now,
	}
}

type UploadMetadata struct {
	Title       string              `json:"title" form:"title" validate:"notblank,max=255"`
	Description string              `json:"description" form:"description"`
	Subject     model.SubjectTag    `json:"subject" form:"subject" validate:"subject"`
	Difficulty  model.DifficultyTag `json:"difficulty" form:"difficulty" validate:"difficulty"`
	Tags        []string            `json:"tags" form:"tags"`
}

// UploadFile is a file handed to UploadResource.
type UploadFile struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

func (s *ResourceService) ListResources(ctx context.Context, q model.ResourceQuery) ([]model.Resource, error) {
	resources, err := s.Resources.ListResources(ctx, q)
	if err != nil {
		return nil, err
	}
	if resources == nil {
		resources = []model.Resource{}
	}
	return resources, nil
}

// StoragePath builds {uploaderID}/{unixMillis}-{random}.{ext}.
func StoragePath(uploaderID, filename string, at time.Time) string {
	return fmt.Sprintf("%s/%d-%s.%s", uploaderID, at.UnixMilli(), util.GenerateRandomString(11), util.FileExt(filename))
}

// UploadResource stores the blob and then inserts the resource row. A failed insert
// leaves the blob in place.
func (s *ResourceService) UploadResource(ctx context.Context, file UploadFile, meta UploadMetadata, uploader model.Identity) (*model.Resource, error) {
	if !uploader.IsTeacher() {
		return nil, util.ErrPermissionDenied
	}
	if file.Size > util.MaxUploadSize {
		return nil, util.ErrFileTooLarge
	}
	if file.Size <= 0 {
		return nil, util.ErrEmptyFile
	}
	if err := util.ValidateStruct(&meta); err != nil {
		return nil, err
	}

	path := StoragePath(uploader.ID, file.Name, s.Now())
	storedPath, err := s.Storage.Upload(ctx, path, file.Reader, file.Size, file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload blob: %w", err)
	}
	if storedPath == "" {
		storedPath = path
	}

	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}
	fileType := file.ContentType

	resource := &model.Resource{
		Title:        meta.Title,
		Description:  meta.Description,
		Subject:      meta.Subject,
		Difficulty:   meta.Difficulty,
		Tags:         tags,
		UploaderID:   uploader.ID,
		UploaderName: uploader.Name,
		FilePath:     &storedPath,
		FileType:     &fileType,
	}
	resource.ID = model.GenerateUUID()

	if err := s.Resources.CreateResource(ctx, resource); err != nil {
		logger.Log.Warn("resource row insert failed after upload",
			zap.String("path", storedPath),
			zap.Error(err),
		)
		return nil, err
	}

	resource.ResolveType()
	return resource, nil
}

// PublicURL resolves a stored file path to the URL dashboards download from.
func (s *ResourceService) PublicURL(path string) string {
	return s.Storage.GetURL(path)
}
