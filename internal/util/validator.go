package util

import (
	"edutrack_backend/internal/model"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	notBlankTag   = "notblank"
	subjectTag    = "subject"
	difficultyTag = "difficulty"
)

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// report fields by their JSON names
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = Validate.RegisterValidation(subjectTag, subjectValidation)
	_ = Validate.RegisterValidation(difficultyTag, difficultyValidation)

	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range []string{notBlankTag, subjectTag, difficultyTag} {
		_ = Validate.RegisterTranslation(tag, Translator, registerFn, translateCustomValidationErrs)
	}
}

func translateCustomValidationErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return "this field cannot be blank"
	case subjectTag:
		return "unknown subject"
	case difficultyTag:
		return "difficulty must be Easy, Medium or Hard"
	default:
		return ""
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func subjectValidation(fl validator.FieldLevel) bool {
	return model.IsSubject(fl.Field().String())
}

func difficultyValidation(fl validator.FieldLevel) bool {
	return model.IsDifficulty(fl.Field().String())
}

// ValidationError carries per-field messages keyed by JSON path.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ValidateStruct runs the struct's validate tags and returns a *ValidationError on failure.
func ValidateStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// drop the root struct name from the namespace
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		fields[ns] = fe.Translate(Translator)
	}
	return &ValidationError{Fields: fields}
}
