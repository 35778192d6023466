package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driving"
	"github.com/mutabaa-labs/mutabaa-core/internal/runtime"
)

// Ensure assistantService implements AssistantService
var _ driving.AssistantService = (*assistantService)(nil)

// assistantService routes free-form queries: project resolution, intent
// classification, then latest-entry lookup or semantic search with a localized
// digest and an optional generated reply.
type assistantService struct {
	projectStore driven.ProjectStore
	entryStore   driven.EntryStore
	search       driving.SearchService
	services     *runtime.Services
	logger       *slog.Logger
}

// NewAssistantService creates a new AssistantService.
func NewAssistantService(
	projectStore driven.ProjectStore,
	entryStore driven.EntryStore,
	search driving.SearchService,
	services *runtime.Services,
	logger *slog.Logger,
) driving.AssistantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &assistantService{
		projectStore: projectStore,
		entryStore:   entryStore,
		search:       search,
		services:     services,
		logger:       logger,
	}
}

// Ask answers a query against the project it mentions.
func (s *assistantService) Ask(ctx context.Context, query string) (*domain.Answer, error) {
	start := time.Now()

	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	projects, err := s.projectStore.List(ctx)
	if err != nil {
		return nil, err
	}
	project, ok := domain.MatchProject(projects, query)
	if !ok {
		return nil, fmt.Errorf("%w: no project matched the query", domain.ErrNotFound)
	}

	entries, err := s.entryStore.List(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: project %s", domain.ErrNoEntries, project.ID)
	}

	answer := &domain.Answer{
		Intent:  domain.DetectIntent(query),
		Project: project.Name,
	}

	if answer.Intent == domain.IntentLatest {
		// Latest bypasses the index entirely: pick the entry with the
		// lexicographically maximal timestamp.
		latest, err := domain.Latest(entries)
		if err != nil {
			return nil, err
		}
		answer.Entry = &latest
		answer.Took = time.Since(start)
		return answer, nil
	}

	results, err := s.search.Search(ctx, query, project.ID, defaultTopK)
	if err != nil {
		return nil, err
	}

	lang := domain.DetectLanguage(query)
	answer.Results = results
	answer.Reply = domain.Summarize(results, lang)
	answer.LLMReply = s.generateReply(ctx, query, results, lang)
	answer.Took = time.Since(start)
	return answer, nil
}

// generateReply asks the local LLM for a free-text answer. Best-effort only:
// failures are logged and produce an empty reply, never an error.
func (s *assistantService) generateReply(ctx context.Context, query string, results []domain.RankedEntry, lang domain.Language) string {
	llm := s.services.LLMService()
	if llm == nil || len(results) == 0 {
		return ""
	}

	var contextLines strings.Builder
	for _, r := range results {
		fmt.Fprintf(&contextLines, "- %s (%s)\n", r.Text, r.Date())
	}

	prompt := englishPrompt(query, contextLines.String())
	if lang == domain.LanguageArabic {
		prompt = arabicPrompt(query, contextLines.String())
	}

	reply, err := llm.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("llm reply failed", "error", err)
		return ""
	}

	// Heuristic language conformance: an Arabic question answered with Latin
	// letters gets one regeneration attempt. Not a guarantee.
	if lang == domain.LanguageArabic && containsLatin(reply) {
		retryPrompt := prompt + "\nكرر الإجابة ولكن تأكد أن تكون بالكامل باللغة العربية دون أي كلمات إنجليزية."
		retry, err := llm.Generate(ctx, retryPrompt)
		if err != nil {
			s.logger.Warn("llm retry failed", "error", err)
			return reply
		}
		return retry
	}
	return reply
}

func arabicPrompt(query, context string) string {
	return "أنت مساعد ذكي لمتابعة المشاريع. استخدم المعلومات التالية للإجابة على استفسار المستخدم:\n" +
		"السؤال: " + query + "\n" +
		"التحديثات:\n" + context + "\n\n" +
		"يرجى إعطاء إجابة دقيقة وموجزة بناءً على التحديثات أعلاه.\n" +
		"أجب باللغة العربية فقط."
}

func englishPrompt(query, context string) string {
	return "You are a smart assistant for project updates. Based on the following user question and related updates:\n" +
		"Question: " + query + "\n" +
		"Updates:\n" + context + "\n\n" +
		"Answer clearly and concisely in English."
}

func containsLatin(text string) bool {
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
