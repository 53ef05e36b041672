package util

import (
	"edutrack_backend/internal/model"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title      string              `json:"title" validate:"notblank"`
	Subject    model.SubjectTag    `json:"subject" validate:"subject"`
	Difficulty model.DifficultyTag `json:"difficulty" validate:"difficulty"`
	Options    []string            `json:"options" validate:"len=2,dive,notblank"`
}

func TestValidateStruct(t *testing.T) {
	ok := sample{Title: "Fractions", Subject: model.SubjectMathematics, Difficulty: model.Easy, Options: []string{"a", "b"}}
	require.NoError(t, ValidateStruct(&ok))

	bad := sample{Title: "   ", Subject: "Astrology", Difficulty: "Trivial", Options: []string{"a", " "}}
	err := ValidateStruct(&bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "this field cannot be blank", verr.Fields["title"])
	assert.Equal(t, "unknown subject", verr.Fields["subject"])
	assert.Equal(t, "difficulty must be Easy, Medium or Hard", verr.Fields["difficulty"])
	assert.Contains(t, verr.Fields, "options[1]")
	assert.Len(t, verr.Fields, 4)
}

func TestValidationErrorMessageIsStable(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"b": "second", "a": "first"}}
	assert.Equal(t, err.Error(), (&ValidationError{Fields: map[string]string{"a": "first", "b": "second"}}).Error())
	assert.Contains(t, err.Error(), "a: first")
}
