package util

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrAttemptSubmitted   = errors.New("attempt already submitted")
	ErrNoQuestions        = errors.New("quiz must have at least one question")
	ErrPointsNotDivisible = errors.New("total points must divide evenly across questions")
	ErrFileTooLarge       = errors.New("file exceeds 20MB limit")
	ErrEmptyFile          = errors.New("file is empty")
	ErrAIKeyMissing       = errors.New("missing generative text API key")
	ErrUnknownAITool      = errors.New("unknown AI tool")
	ErrEmptyPrompt        = errors.New("prompt is required")
	ErrInvalidInput       = errors.New("invalid input")
)
