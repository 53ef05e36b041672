package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceQueryFilters(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", ""},
		{"All", ""},
		{"all", ""},
		{"ALL", ""},
		{"Biology", "Biology"},
		{"Allergy", "Allergy"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			q := ResourceQuery{Subject: tt.value, Difficulty: tt.value}
			assert.Equal(t, tt.want, q.SubjectFilter())
			assert.Equal(t, tt.want, q.DifficultyFilter())
		})
	}
}

func TestResolveType(t *testing.T) {
	ptr := func(s string) *string { return &s }
	tests := []struct {
		fileType *string
		want     ResourceType
	}{
		{ptr("application/pdf"), ResourcePDF},
		{ptr("application/vnd.openxmlformats-officedocument.presentationml.presentation"), ResourcePPTX},
		{ptr("application/msword"), ResourceDOCX},
		{ptr("image/png"), ResourceImage},
		{nil, ResourceLink},
	}

	for _, tt := range tests {
		r := Resource{FileType: tt.fileType}
		r.ResolveType()
		assert.Equal(t, tt.want, r.Type)
	}
}
