package inmem

import (
	"context"
	"edutrack_backend/internal/model"
	"sort"
	"strings"
)

type resourceRow struct {
	seq      int
	resource model.Resource
}

type ResourceRepository struct {
	db *DB
}

func NewResourceRepository(db *DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) CreateResource(ctx context.Context, resource *model.Resource) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if resource.ID == "" {
		resource.ID = model.GenerateUUID()
	}
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = r.db.Now()
	}
	r.db.resources = append(r.db.resources, &resourceRow{seq: r.db.next(), resource: *resource})
	return nil
}

func (r *ResourceRepository) ListResources(ctx context.Context, q model.ResourceQuery) ([]model.Resource, error) {
	r.db.mutex.RLock()
	var rows []*resourceRow
	text := strings.ToLower(strings.TrimSpace(q.Query))
	for _, row := range r.db.resources {
		res := row.resource
		if s := q.SubjectFilter(); s != "" && string(res.Subject) != s {
			continue
		}
		if d := q.DifficultyFilter(); d != "" && string(res.Difficulty) != d {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(res.Title), text) &&
			!strings.Contains(strings.ToLower(res.Description), text) {
			continue
		}
		rows = append(rows, row)
	}
	r.db.mutex.RUnlock()

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].resource.CreatedAt.Equal(rows[j].resource.CreatedAt) {
			return rows[i].seq > rows[j].seq
		}
		return rows[i].resource.CreatedAt.After(rows[j].resource.CreatedAt)
	})

	resources := make([]model.Resource, 0, len(rows))
	for _, row := range rows {
		res := row.resource
		res.ResolveType()
		resources = append(resources, res)
	}
	return resources, nil
}
