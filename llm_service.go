package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hotabics/pitchtimerai-sub001/config"
	"github.com/hotabics/pitchtimerai-sub001/i18n"
)

// ConnectionResult carries the outcome of a connectivity probe back to the UI.
type ConnectionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LLMService is the plain-HTTP chat client. It serves connection tests and
// speaker-note coaching; structured slide generation goes through the eino
// chat model in ai_slide_generator.go.
type LLMService struct {
	Provider          string
	APIKey            string
	BaseURL           string
	ModelName         string
	MaxTokens         int
	ClaudeHeaderStyle string

	logger func(string)
}

func NewLLMService(cfg config.Config, logFunc func(string)) *LLMService {
	return &LLMService{
		Provider:          cfg.LLMProvider,
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		ModelName:         cfg.ModelName,
		MaxTokens:         cfg.MaxTokens,
		ClaudeHeaderStyle: cfg.ClaudeHeaderStyle,
		logger:            logFunc,
	}
}

func (s *LLMService) log(msg string) {
	if s.logger != nil {
		s.logger(msg)
	}
}

// Chat sends one user message and returns the assistant's text reply.
func (s *LLMService) Chat(ctx context.Context, message string) (string, error) {
	s.log(fmt.Sprintf("[LLM] Chat request [%s], %d chars", s.Provider, len(message)))

	if s.APIKey == "" && s.Provider != "OpenAI-Compatible" && s.Provider != "Claude-Compatible" {
		return "", fmt.Errorf("API key not configured. Please set your API key in settings")
	}

	var resp string
	var err error

	switch s.Provider {
	case "OpenAI", "OpenAI-Compatible":
		resp, err = s.chatOpenAI(ctx, message)
	case "Anthropic":
		resp, err = s.chatAnthropic(ctx, message)
	case "Claude-Compatible":
		resp, err = s.chatClaudeCompatible(ctx, message)
	default:
		return "", fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}

	if err != nil {
		s.log(fmt.Sprintf("[LLM] Chat error: %v", err))
	} else {
		s.log(fmt.Sprintf("[LLM] Chat response, %d chars", len(resp)))
	}

	return resp, err
}

// openAIURL resolves the chat-completions endpoint from the configured base
// URL. A bare host gets the standard /v1/chat/completions path; a path that
// already names a versioned API keeps its version segment.
func (s *LLMService) openAIURL() (string, error) {
	if s.BaseURL == "" {
		return "https://api.openai.com/v1/chat/completions", nil
	}

	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %v", err)
	}

	path := u.Path
	if !strings.HasSuffix(strings.TrimSuffix(path, "/"), "/chat/completions") {
		if !strings.HasSuffix(path, "/") {
			path += "/"
		}

		hasVersion := false
		for _, p := range strings.Split(path, "/") {
			if strings.HasPrefix(p, "v") && len(p) > 1 && p[1] >= '0' && p[1] <= '9' {
				hasVersion = true
				break
			}
		}

		if hasVersion {
			path += "chat/completions"
		} else {
			path += "v1/chat/completions"
		}
	}
	u.Path = path
	return u.String(), nil
}

// anthropicURL resolves the messages endpoint from the configured base URL.
// Only bare or /v1 paths get the standard suffix; a custom path is kept as-is.
func (s *LLMService) anthropicURL(defaultHost string) (string, error) {
	if s.BaseURL == "" {
		return defaultHost, nil
	}

	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %v", err)
	}

	path := u.Path
	if path == "" || path == "/" || path == "/v1" || path == "/v1/" {
		if !strings.HasSuffix(path, "/") {
			path += "/"
		}
		if !strings.HasPrefix(strings.TrimPrefix(path, "/"), "v1") {
			path += "v1/"
		}
		path += "messages"
	}
	u.Path = path
	return u.String(), nil
}

// maxTokensOrDefault falls back to a conservative budget when the config
// carries no value.
func (s *LLMService) maxTokensOrDefault() int {
	if s.MaxTokens <= 0 {
		return 1024
	}
	return s.MaxTokens
}

func (s *LLMService) chatOpenAI(ctx context.Context, message string) (string, error) {
	fullURL, err := s.openAIURL()
	if err != nil {
		return "", err
	}

	body := map[string]interface{}{
		"model":      s.ModelName,
		"max_tokens": s.maxTokensOrDefault(),
		"messages": []map[string]string{
			{"role": "user", "content": message},
		},
	}

	jsonBody, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, "POST", fullURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("API error (404): Not Found. Please check your Base URL and path (e.g., /v1/chat/completions). Full URL used: %s", fullURL)
		}
		if resp.StatusCode == http.StatusBadRequest {
			return "", fmt.Errorf("API error (400): Bad Request. This often means the model name '%s' is incorrect or doesn't exist on the provider. Original error: %s", s.ModelName, string(respBody))
		}
		return "", fmt.Errorf("OpenAI-compatible API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("no response from OpenAI-compatible API")
}

func (s *LLMService) chatAnthropic(ctx context.Context, message string) (string, error) {
	fullURL, err := s.anthropicURL("https://api.anthropic.com/v1/messages")
	if err != nil {
		return "", err
	}
	return s.anthropicRequest(ctx, fullURL, message, "Anthropic", func(req *http.Request) {
		req.Header.Set("x-api-key", s.APIKey)
		req.Header.Set("anthropic-version", "2023-06-01")
	})
}

func (s *LLMService) chatClaudeCompatible(ctx context.Context, message string) (string, error) {
	if s.BaseURL == "" {
		return "", fmt.Errorf("Base URL is required for Claude-Compatible provider")
	}
	fullURL, err := s.anthropicURL("")
	if err != nil {
		return "", err
	}

	return s.anthropicRequest(ctx, fullURL, message, "Claude-Compatible", func(req *http.Request) {
		if s.ClaudeHeaderStyle == "OpenAI" {
			if s.APIKey != "" {
				req.Header.Set("Authorization", "Bearer "+s.APIKey)
			}
			return
		}
		if s.APIKey != "" {
			req.Header.Set("x-api-key", s.APIKey)
		}
		req.Header.Set("anthropic-version", "2023-06-01")
	})
}

// anthropicRequest runs one Anthropic-contract messages call; setAuth applies
// the provider's header style.
func (s *LLMService) anthropicRequest(ctx context.Context, fullURL, message, providerLabel string, setAuth func(*http.Request)) (string, error) {
	body := map[string]interface{}{
		"model":      s.ModelName,
		"max_tokens": s.maxTokensOrDefault(),
		"messages": []map[string]string{
			{"role": "user", "content": message},
		},
	}

	jsonBody, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, "POST", fullURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	setAuth(req)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("API error (404): Not Found. Please check your Base URL and path (e.g., /v1/messages). Full URL used: %s", fullURL)
		}
		return "", fmt.Errorf("%s API error (%d): %s", providerLabel, resp.StatusCode, string(respBody))
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if len(result.Content) > 0 {
		return result.Content[0].Text, nil
	}

	return "", fmt.Errorf("no response from %s", providerLabel)
}

// SuggestSpeakerNotes asks the model for improved speaker notes for one slide
// and returns the plain suggestion text.
func (s *LLMService) SuggestSpeakerNotes(ctx context.Context, slide Slide) (string, error) {
	var b strings.Builder
	b.WriteString(i18n.GetCoachSystemPrompt())
	b.WriteString("\n\nTitle: ")
	b.WriteString(slide.Title)
	if len(slide.Content) > 0 {
		b.WriteString("\nContent:\n")
		for _, line := range slide.Content {
			b.WriteString("- ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if slide.SpeakerNotes != "" {
		b.WriteString("\nCurrent notes: ")
		b.WriteString(slide.SpeakerNotes)
	}

	reply, err := s.Chat(ctx, b.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// coachingFallbacks are served when the model is unreachable, so the coaching
// action still returns something actionable.
var coachingFallbacks = []string{
	"Open with the single number or fact that matters most, then explain why it matters to this audience.",
	"Cut every sentence that repeats what the slide already shows; say what the slide cannot.",
	"End this slide with a bridge line that sets up the next one in ten words or fewer.",
	"Replace abstractions with one concrete customer story told in two sentences.",
}

// CoachingFallback picks a canned suggestion for a slide. Deterministic per
// slide id so repeated failures do not shuffle the advice.
func CoachingFallback(slideID int) string {
	if slideID < 0 {
		slideID = -slideID
	}
	return coachingFallbacks[slideID%len(coachingFallbacks)]
}

// TestConnection sends a minimal round-trip message and reports the outcome.
func (s *LLMService) TestConnection(ctx context.Context) ConnectionResult {
	_, err := s.Chat(ctx, "Connection test. Reply with the single word: ok")
	if err != nil {
		return ConnectionResult{Success: false, Message: i18n.T("llm.test_failed", err.Error())}
	}
	return ConnectionResult{Success: true, Message: i18n.T("llm.test_success")}
}
