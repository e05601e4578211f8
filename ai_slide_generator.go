package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/hotabics/pitchtimerai-sub001/config"
	"github.com/hotabics/pitchtimerai-sub001/i18n"
)

// ChatCompleter is the narrow model surface slide generation needs: one
// system-plus-user exchange returning the assistant text.
type ChatCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// einoChatCompleter adapts an eino chat model to ChatCompleter.
type einoChatCompleter struct {
	model model.ChatModel
}

func (c *einoChatCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// llmChatCompleter adapts the plain-HTTP client for Anthropic-style
// providers, which the eino OpenAI model cannot reach.
type llmChatCompleter struct {
	llm *LLMService
}

func (c *llmChatCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.llm.Chat(ctx, systemPrompt+"\n\n"+userPrompt)
}

// NewChatCompleter builds the completer for the configured provider. OpenAI
// and OpenAI-compatible endpoints go through the eino chat model; Anthropic
// and Claude-Compatible endpoints go through the plain-HTTP client.
func NewChatCompleter(cfg config.Config, logger func(string)) (ChatCompleter, error) {
	switch cfg.LLMProvider {
	case "Anthropic", "Claude-Compatible":
		return &llmChatCompleter{llm: NewLLMService(cfg, logger)}, nil
	default:
		chatModel, err := openai.NewChatModel(context.Background(), &openai.ChatModelConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.ModelName,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create eino chat model: %v", err)
		}
		return &einoChatCompleter{model: chatModel}, nil
	}
}

// AISlideGenerator maps a rehearsal script to slides through a chat model.
// Generation is all-or-nothing: any transport, parse or validation failure
// returns an error and no slides, so the caller can fall back to the
// deterministic path with the deck untouched.
type AISlideGenerator struct {
	completer ChatCompleter
	logger    func(string)
}

func NewAISlideGenerator(completer ChatCompleter, logger func(string)) *AISlideGenerator {
	return &AISlideGenerator{
		completer: completer,
		logger:    logger,
	}
}

func (g *AISlideGenerator) log(msg string) {
	if g.logger != nil {
		g.logger(msg)
	}
}

// GenerateAISlides submits the script to the model and returns the parsed,
// validated, renumbered slide list.
func (g *AISlideGenerator) GenerateAISlides(ctx context.Context, blocks []ScriptBlock, projectTitle string) ([]Slide, error) {
	if g.completer == nil {
		return nil, fmt.Errorf("no chat model configured")
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("script has no sections")
	}

	scriptJSON, err := json.MarshalIndent(blocks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode script: %v", err)
	}

	reply, err := g.completer.Complete(ctx,
		i18n.GetSlideSystemPrompt(),
		i18n.BuildSlideUserPrompt(projectTitle, string(scriptJSON)),
	)
	if err != nil {
		return nil, fmt.Errorf("slide generation request failed: %w", err)
	}

	slides, err := parseSlidesReply(reply)
	if err != nil {
		g.log(fmt.Sprintf("[AI-GEN] Rejected model reply: %v", err))
		return nil, err
	}

	g.log(fmt.Sprintf("[AI-GEN] Model produced %d slides", len(slides)))
	return slides, nil
}

// aiSlide is the wire shape the model is instructed to produce.
type aiSlide struct {
	Type         string   `json:"type"`
	Layout       string   `json:"layout"`
	Title        string   `json:"title"`
	Content      []string `json:"content"`
	ImageKeyword string   `json:"imageKeyword"`
	SpeakerNotes string   `json:"speakerNotes"`
}

// parseSlidesReply validates the model reply and maps it into slides with
// fresh sequential ids. Any malformed entry rejects the whole reply.
func parseSlidesReply(reply string) ([]Slide, error) {
	payload := extractJSON(reply)

	var parsed struct {
		Slides []aiSlide `json:"slides"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		// The model sometimes wraps the object in prose; retry on the
		// outermost brace pair before giving up.
		start := strings.Index(payload, "{")
		end := strings.LastIndex(payload, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("model reply is not valid JSON: %v", err)
		}
		if err2 := json.Unmarshal([]byte(payload[start:end+1]), &parsed); err2 != nil {
			return nil, fmt.Errorf("model reply is not valid JSON: %v", err2)
		}
	}
	if len(parsed.Slides) == 0 {
		return nil, fmt.Errorf("model reply contains no slides")
	}

	slides := make([]Slide, 0, len(parsed.Slides))
	for i, raw := range parsed.Slides {
		slideType := SlideType(raw.Type)
		if !IsValidSlideType(slideType) {
			return nil, fmt.Errorf("slide %d has unknown type %q", i+1, raw.Type)
		}

		layout := SlideLayout(raw.Layout)
		if raw.Layout == "" {
			layout = LayoutDefault
		}
		if !IsValidSlideLayout(layout) {
			return nil, fmt.Errorf("slide %d has unknown layout %q", i+1, raw.Layout)
		}

		content := raw.Content
		if content == nil {
			content = []string{}
		}

		slides = append(slides, Slide{
			ID:           i + 1,
			Type:         slideType,
			Layout:       layout,
			Title:        strings.TrimSpace(raw.Title),
			Content:      content,
			ImageKeyword: strings.TrimSpace(raw.ImageKeyword),
			SpeakerNotes: strings.TrimSpace(raw.SpeakerNotes),
		})
	}
	return slides, nil
}

// extractJSON strips markdown code fences from a model reply.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if idx := strings.Index(content, "```json"); idx >= 0 {
		content = content[idx+7:]
		if endIdx := strings.Index(content, "```"); endIdx >= 0 {
			content = content[:endIdx]
		}
	} else if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[idx+3:]
		if endIdx := strings.Index(content, "```"); endIdx >= 0 {
			content = content[:endIdx]
		}
	}

	return strings.TrimSpace(content)
}
