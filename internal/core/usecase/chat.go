package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/madewithnestle/ai-chatbot/internal/core/domain"
	"github.com/madewithnestle/ai-chatbot/internal/core/ports"
)

const maxAnswerSources = 3

// PipelineObserver records degradation events for the metrics layer.
type PipelineObserver interface {
	RecordFallback(stage string)
	RecordRetrieval(sourceCount int)
}

type noopObserver struct{}

func (noopObserver) RecordFallback(string) {}
func (noopObserver) RecordRetrieval(int)   {}

// ChatUseCase runs the full answer pipeline: graph context composition, web
// evidence gathering, and answer generation, each degrading to its static
// fallback so a chat request never hard-fails after input validation.
type ChatUseCase struct {
	knowledge *KnowledgeService
	composer  *Composer
	gatherer  *Gatherer
	generator ports.AnswerGenerator
	observer  PipelineObserver
	logger    *slog.Logger
}

func NewChatUseCase(
	knowledge *KnowledgeService,
	composer *Composer,
	gatherer *Gatherer,
	generator ports.AnswerGenerator,
	observer PipelineObserver,
	logger *slog.Logger,
) *ChatUseCase {
	if observer == nil {
		observer = noopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatUseCase{
		knowledge: knowledge,
		composer:  composer,
		gatherer:  gatherer,
		generator: generator,
		observer:  observer,
		logger:    logger,
	}
}

func (uc *ChatUseCase) Chat(ctx context.Context, question string) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "chat", fmt.Errorf("question is required"))
	}

	uc.knowledge.Init(ctx)
	graph, table := uc.knowledge.Snapshot()

	contextText, degraded := uc.composer.Compose(ctx, question, graph, table)
	if degraded {
		uc.observer.RecordFallback("context")
	}

	sources := uc.gatherer.Gather(ctx, question, 0)
	if len(sources) > maxAnswerSources {
		sources = sources[:maxAnswerSources]
	}
	uc.observer.RecordRetrieval(len(sources))

	answerText, err := uc.generator.Generate(ctx, question, buildPromptContext(question, contextText, sources))
	if err != nil {
		uc.logger.Warn("generation_fallback", "error", err)
		uc.observer.RecordFallback("answer")
		answerText = FallbackAnswer(question)
	}

	return &domain.Answer{
		Text:    answerText,
		Sources: sources,
	}, nil
}

func (uc *ChatUseCase) Status() domain.KnowledgeStatus {
	return uc.knowledge.Status()
}

func buildPromptContext(question, contextText string, sources []string) string {
	var web strings.Builder
	for _, u := range sources {
		web.WriteString("- ")
		web.WriteString(u)
		web.WriteString("\n")
	}

	return fmt.Sprintf(`NESTLÉ KNOWLEDGE BASE:
%s

RELEVANT NESTLÉ WEBSITES:
%s
QUERY CONTEXT: The user is asking about: %s
Please provide a response specifically focused on Nestlé Canada products, services, and information.`,
		contextText, web.String(), question)
}
