package model

import "strings"

type ResourceType string

const (
	ResourcePDF   ResourceType = "pdf"
	ResourceDOCX  ResourceType = "docx"
	ResourcePPTX  ResourceType = "pptx"
	ResourceImage ResourceType = "image"
	ResourceLink  ResourceType = "link"
)

// Resource is a learning material uploaded by a teacher.
// swagger:model Resource
type Resource struct {
	UUIDBase
	Title        string        `gorm:"size:255;not null" json:"title"`
	Description  string        `gorm:"type:text" json:"description"`
	Subject      SubjectTag    `gorm:"size:50;index" json:"subject"`
	Difficulty   DifficultyTag `gorm:"size:20;index" json:"difficulty"`
	Tags         []string      `gorm:"serializer:json;type:text" json:"tags"`
	UploaderID   string        `gorm:"index;type:varchar(36)" json:"uploader_id"`
	UploaderName string        `gorm:"size:100" json:"uploader_name"`
	FilePath     *string       `gorm:"size:512" json:"file_path"`
	FileType     *string       `gorm:"size:255" json:"file_type"`
	Type         ResourceType  `gorm:"-" json:"type"`
}

func (Resource) TableName() string {
	return "resources"
}

// ResolveType derives the display type from the stored MIME type.
func (r *Resource) ResolveType() {
	ft := ""
	if r.FileType != nil {
		ft = *r.FileType
	}
	switch {
	case strings.Contains(ft, "pdf"):
		r.Type = ResourcePDF
	case strings.Contains(ft, "presentation"), strings.Contains(ft, "ppt"):
		r.Type = ResourcePPTX
	case strings.Contains(ft, "word"), strings.Contains(ft, "doc"):
		r.Type = ResourceDOCX
	case strings.HasPrefix(ft, "image/"):
		r.Type = ResourceImage
	default:
		r.Type = ResourceLink
	}
}

// ResourceQuery filters the resource library. Empty fields and FilterAll, in any case, are ignored.
type ResourceQuery struct {
	Query      string `form:"query"`
	Subject    string `form:"subject"`
	Difficulty string `form:"difficulty"`
}

func (q ResourceQuery) SubjectFilter() string {
	if strings.EqualFold(q.Subject, FilterAll) {
		return ""
	}
	return q.Subject
}

func (q ResourceQuery) DifficultyFilter() string {
	if strings.EqualFold(q.Difficulty, FilterAll) {
		return ""
	}
	return q.Difficulty
}
