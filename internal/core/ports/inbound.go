package ports

import (
	"context"

	"github.com/madewithnestle/ai-chatbot/internal/core/domain"
)

// ChatService answers a free-text question about the brand.
type ChatService interface {
	Chat(ctx context.Context, question string) (*domain.Answer, error)
}

// KnowledgeReporter exposes graph availability for the health endpoint.
type KnowledgeReporter interface {
	Status() domain.KnowledgeStatus
}
