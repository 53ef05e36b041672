package service

import (
	"bytes"
	"context"
	"edutrack_backend/internal/config"
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/util"
	"edutrack_backend/pkg/monitoring"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	AIProviderGemini = "gemini"
	AIProviderOpenAI = "openai"
)

// AIError is a non-2xx answer from the generative text endpoint.
type AIError struct {
	StatusCode int
	Body       string
}

func (e *AIError) Error() string {
	return fmt.Sprintf("AI API error (status %d): %s", e.StatusCode, e.Body)
}

// TeacherTool is a preset prompt of the teacher AI tools page.
type TeacherTool struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Preset string `json:"-"`
}

var TeacherTools = map[string]TeacherTool{
	"quiz": {
		Key:   "quiz",
		Title: "Quiz Generator",
		Preset: "Generate 5 multiple-choice questions based on the provided content. Format each question as follows:\n\n" +
			"* Question text here?\nA) Option A\nB) Option B\nC) Option C\nD) Option D\nCorrect Answer: X\n\n" +
			"Make sure each question is separated by a blank line and starts with an asterisk (*).",
	},
	"summarize": {
		Key:   "summarize",
		Title: "Content Summarizer",
		Preset: "Summarize the content using clear bullet points. Start with a brief overview, " +
			"then list key points using bullet points (•). Make it easy to read and well-structured.",
	},
	"enhance": {
		Key:   "enhance",
		Title: "Content Enhancer",
		Preset: "Enhance the content for clarity and engagement. Use bullet points (•) for key improvements " +
			"and maintain a clear structure. Focus on:\n• Grammar and clarity\n• Better organization\n" +
			"• Improved readability\n• Enhanced engagement",
	},
}

type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	Client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		Client: &http.Client{Timeout: 60 * time.Second},
	}
}

// UpdateConfig swaps provider settings, e.g. after the config file changed on disk.
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

func (s *AIService) settings() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends prompt as is.
func (s *AIService) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", util.ErrEmptyPrompt
	}
	return s.send(ctx, prompt)
}

// GenerateWithContext prefixes the prompt with the caller's role and optional context.
func (s *AIService) GenerateWithContext(ctx context.Context, prompt string, role model.UserRole, extraContext string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", util.ErrEmptyPrompt
	}
	return s.send(ctx, ComposePrompt(prompt, role, extraContext))
}

func ComposePrompt(prompt string, role model.UserRole, extraContext string) string {
	preamble := fmt.Sprintf("User role: %s. Respond clearly and concisely.", role)
	if extraContext != "" {
		return fmt.Sprintf("%s\n\nContext (may include extracted file text):\n%s\n\nTask:\n%s", preamble, extraContext, prompt)
	}
	return fmt.Sprintf("%s\n\nTask:\n%s", preamble, prompt)
}

// RunTeacherTool runs one of TeacherTools over content with an optional teacher request.
func (s *AIService) RunTeacherTool(ctx context.Context, tool, request, content string) (string, error) {
	t, ok := TeacherTools[tool]
	if !ok {
		return "", util.ErrUnknownAITool
	}

	request = strings.TrimSpace(request)
	if request == "" && strings.TrimSpace(content) == "" {
		return "", util.ErrEmptyPrompt
	}
	if request == "" {
		request = "Use the provided content to perform the task."
	}

	composed := fmt.Sprintf("%s\n\nTeacher request:\n%s", t.Preset, request)
	return s.GenerateWithContext(ctx, composed, model.Teacher, content)
}

func (s *AIService) send(ctx context.Context, prompt string) (string, error) {
	cfg := s.settings()
	if cfg.APIKey == "" {
		return "", util.ErrAIKeyMissing
	}

	var (
		text string
		err  error
	)
	switch cfg.Provider {
	case AIProviderOpenAI:
		text, err = s.chatCompletion(ctx, cfg, prompt)
	default:
		text, err = s.generateContent(ctx, cfg, prompt)
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	monitoring.AIRequests.WithLabelValues(providerLabel(cfg.Provider), outcome).Inc()
	return text, err
}

func providerLabel(p string) string {
	if p == AIProviderOpenAI {
		return AIProviderOpenAI
	}
	return AIProviderGemini
}

func (s *AIService) generateContent(ctx context.Context, cfg config.AIConfig, prompt string) (string, error) {
	reqBody := generateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(cfg.BaseURL, "/"), cfg.Model, url.QueryEscape(cfg.APIKey))

	body, err := s.post(ctx, endpoint, reqBody, nil)
	if err != nil {
		return "", err
	}

	var result generateContentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

func (s *AIService) chatCompletion(ctx context.Context, cfg config.AIConfig, prompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model:    cfg.Model,
		Messages: []AIChatMessage{{Role: "user", Content: prompt}},
	}

	headers := map[string]string{"Authorization": "Bearer " + cfg.APIKey}
	body, err := s.post(ctx, strings.TrimRight(cfg.BaseURL, "/")+"/chat/completions", reqBody, headers)
	if err != nil {
		return "", err
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

func (s *AIService) post(ctx context.Context, endpoint string, payload interface{}, headers map[string]string) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &AIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
