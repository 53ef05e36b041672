package repository

import (
	"context"
	"edutrack_backend/internal/model"
	"strings"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	DB *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

func (r *ResourceRepository) CreateResource(ctx context.Context, resource *model.Resource) error {
	return r.DB.WithContext(ctx).Create(resource).Error
}

func (r *ResourceRepository) ListResources(ctx context.Context, q model.ResourceQuery) ([]model.Resource, error) {
	query := r.DB.WithContext(ctx).Model(&model.Resource{}).Order("created_at desc")

	if s := q.SubjectFilter(); s != "" {
		query = query.Where("subject = ?", s)
	}
	if d := q.DifficultyFilter(); d != "" {
		query = query.Where("difficulty = ?", d)
	}
	if text := strings.TrimSpace(q.Query); text != "" {
		like := "%" + strings.ToLower(text) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}

	var resources []model.Resource
	if err := query.Find(&resources).Error; err != nil {
		return nil, err
	}
	for i := range resources {
		resources[i].ResolveType()
	}
	return resources, nil
}
