package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"jeeprep_backend/internal/config"
	"net/http"
)

// AIService is a thin client for an OpenAI-compatible chat-completions
// endpoint. Calls are single-shot: no retry, no caching, no rate limiting.
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []AIChatMessage `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat sends a single prompt with an optional system message and returns
// the assistant's text.
func (s *AIService) Chat(system, prompt string) (string, error) {
	return s.complete(system, prompt, nil)
}

// ChatJSON is Chat constrained to a JSON object response, for
// structured-output drafts.
func (s *AIService) ChatJSON(system, prompt string) (string, error) {
	return s.complete(system, prompt, &responseFormat{Type: "json_object"})
}

func (s *AIService) complete(system, prompt string, format *responseFormat) (string, error) {
	messages := []AIChatMessage{}
	if system != "" {
		messages = append(messages, AIChatMessage{Role: "system", Content: system})
	}
	messages = append(messages, AIChatMessage{Role: "user", Content: prompt})

	reqBody := chatCompletionRequest{
		Model:          s.config.Model,
		Messages:       messages,
		ResponseFormat: format,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("AI returned no choices")
}
