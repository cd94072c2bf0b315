package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

type draftedReply struct {
	Reply string `json:"reply"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// DraftQueryReply asks GPT for a short reply an organizer can send to a student's question.
func (s *AIService) DraftQueryReply(ctx context.Context, question string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You help the organizers of Campuspreneurs, a student entrepreneurship
event at a college, answer questions sent through the website's contact form.

Question:
%s

Write a polite reply of at most 120 words that an organizer can edit and send.
If the question needs information you do not have (dates, venues, results),
say that the team will confirm it rather than guessing.

Return JSON only, in this form:
{"reply": "the reply text"}`, question)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return parseDraftedReply(resp.Choices[0].Message.Content)
}

// parseDraftedReply extracts the reply, tolerating a fenced code block around the JSON.
func parseDraftedReply(content string) (string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var draft draftedReply
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &draft); err != nil {
		return "", fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}
	if strings.TrimSpace(draft.Reply) == "" {
		return "", fmt.Errorf("AI returned an empty reply")
	}
	return strings.TrimSpace(draft.Reply), nil
}
