package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/llm"
)

const (
	maxSuggestions    = 5
	maxTopicLength    = 200
	generationTimeout = 15 * time.Second
)

// The prompt asks for plain lines so the parser can stay a pure line
// splitter. Numbering or bullets emitted despite the instruction pass
// through verbatim.
const taskPromptTemplate = `Generate a list of 5 concise, actionable tasks to learn about or accomplish: "%s".

Requirements:
- Each task should be specific and actionable
- Tasks should be realistic and achievable
- Return only the tasks, one per line
- No numbering, bullets, or extra formatting
- Each task should be a complete sentence

Example format:
Research the fundamentals of Python programming
Set up a Python development environment
Complete a beginner Python tutorial
Build a simple calculator project
Join a Python community or forum`

// ParseSuggestions converts raw generated text into at most 5 non-empty task
// titles: split on line boundaries, trim, drop blanks, keep original order.
func ParseSuggestions(text string) []string {
	suggestions := make([]string, 0, maxSuggestions)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		suggestions = append(suggestions, trimmed)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}

// GenerationService turns a topic into a batch of suggested task titles. The
// batch is ephemeral; nothing is persisted until the client submits it to the
// bulk create endpoint.
type GenerationService interface {
	GenerateTasks(ctx context.Context, topic string) ([]string, error)
}

type generationService struct {
	generator llm.TextGenerator
}

// NewGenerationService creates a new generation service. A nil generator
// marks the capability as not configured.
func NewGenerationService(generator llm.TextGenerator) GenerationService {
	return &generationService{generator: generator}
}

func (s *generationService) GenerateTasks(ctx context.Context, topic string) ([]string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" || utf8.RuneCountInString(topic) > maxTopicLength {
		return nil, apperrors.ErrInvalidTopic
	}
	if s.generator == nil {
		return nil, apperrors.ErrGenerationUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	text, err := s.generator.GenerateText(ctx, fmt.Sprintf(taskPromptTemplate, topic))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGenerationFailed, err)
	}

	return ParseSuggestions(text), nil
}
