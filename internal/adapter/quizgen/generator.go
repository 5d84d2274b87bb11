// Package quizgen produces quizzes and curricula from a generative model,
// repairs the output and caches it.
package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"edu-quiz/internal/cache"
	"edu-quiz/internal/domain"
	"edu-quiz/internal/llm"
	"edu-quiz/internal/logger"
	"edu-quiz/internal/quizrepair"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	cacheService   = "quizgen"
	kindQuiz       = "quiz"
	kindCurriculum = "curriculum"

	defaultTimeout  = 60 * time.Second
	quizTemperature = 0.7
	quizMaxTokens   = 4096
)

// Config tunes the generators.
type Config struct {
	Locale       string
	DefaultCount int
	Timeout      time.Duration
	CacheTTL     time.Duration
}

// Generator implements domain.QuizGenerationService and
// domain.CurriculumGenerationService on top of an llm.Provider.
type Generator struct {
	provider llm.Provider
	cache    domain.Cache
	cfg      Config
	locale   quizrepair.Locale
	group    singleflight.Group
}

// NewGenerator wires a provider and a cache. A nil cache disables caching.
func NewGenerator(provider llm.Provider, c domain.Cache, cfg Config) *Generator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = 5
	}
	return &Generator{
		provider: provider,
		cache:    c,
		cfg:      cfg,
		locale:   quizrepair.ParseLocale(cfg.Locale),
	}
}

func (g *Generator) localeFor(requested string) quizrepair.Locale {
	if requested == "" {
		return g.locale
	}
	return quizrepair.ParseLocale(requested)
}

// GenerateQuiz asks the model for a quiz and returns it after arithmetic repair.
func (g *Generator) GenerateQuiz(ctx context.Context, req domain.QuizGenerationRequest) (*domain.QuizGenerationResult, error) {
	if req.QuestionCount <= 0 {
		req.QuestionCount = g.cfg.DefaultCount
	}
	if req.Difficulty == "" {
		req.Difficulty = domain.DifficultyMedium
	}
	locale := g.localeFor(req.Locale)
	prompt := buildQuizPrompt(req, locale)
	key := g.quizKey(prompt, locale)

	var result domain.QuizGenerationResult
	err := g.generate(ctx, key, kindQuiz, llm.Request{
		System:      quizSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		JSON:        true,
		MaxTokens:   quizMaxTokens,
		Temperature: quizTemperature,
	}, func(text string) (any, error) {
		return quizrepair.NewResponseValidator(quizrepair.WithLocale(locale)).ParseAndRepair(text)
	}, &result)
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Quiz generated",
		zap.String("title", req.Title),
		zap.String("grade", req.Grade),
		zap.String("difficulty", string(req.Difficulty)),
		zap.Int("requested", req.QuestionCount),
		zap.Int("received", len(result.Questions)),
	)
	return &result, nil
}

func (g *Generator) quizKey(prompt string, locale quizrepair.Locale) string {
	return cache.GenerateCacheKey(cacheService, kindQuiz, cache.Fingerprint(g.provider.ModelID(), quizSystemPrompt, prompt), string(locale))
}

// GenerateCurriculum asks the model for a lesson plan on topic.
func (g *Generator) GenerateCurriculum(ctx context.Context, topic string) (*domain.CurriculumContent, error) {
	prompt := buildCurriculumPrompt(topic, g.locale)
	key := cache.GenerateCacheKey(cacheService, kindCurriculum, cache.Fingerprint(g.provider.ModelID(), curriculumSystemPrompt, prompt), string(g.locale))

	var content domain.CurriculumContent
	err := g.generate(ctx, key, kindCurriculum, llm.Request{
		System:      curriculumSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		JSON:        true,
		MaxTokens:   quizMaxTokens,
		Temperature: quizTemperature,
	}, func(text string) (any, error) {
		return quizrepair.NewResponseValidator(quizrepair.WithLocale(g.locale)).ParseCurriculum(text)
	}, &content)
	if err != nil {
		return nil, err
	}
	for i := range content.Lessons {
		content.Lessons[i].Position = i
	}
	return &content, nil
}

// generate serves key from the cache, or calls the model once per key across
// concurrent callers, parses the text, caches the parsed value and decodes it
// into out. Every caller gets its own copy.
func (g *Generator) generate(ctx context.Context, key, purpose string, req llm.Request, parse func(string) (any, error), out any) error {
	l := logger.Get()

	if cached, ok := g.lookup(ctx, key); ok {
		if err := json.Unmarshal([]byte(cached), out); err == nil {
			l.Debug("Generation served from cache", zap.String("key", key))
			return nil
		}
		l.Warn("Discarding undecodable cache entry", zap.String("key", key))
	}

	ch := g.group.DoChan(key, func() (any, error) {
		// Detached so one caller's cancellation does not fail the others.
		callCtx, cancel := context.WithTimeout(llm.WithPurpose(context.WithoutCancel(ctx), purpose), g.cfg.Timeout)
		defer cancel()

		resp, err := g.provider.Generate(callCtx, req)
		if err != nil {
			return nil, domain.NewLLMServiceError(err)
		}
		parsed, err := parse(resp.Content)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(parsed)
		if err != nil {
			return nil, domain.NewInternalError("failed to encode generated content", err)
		}
		g.store(callCtx, key, encoded)
		return encoded, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		if res.Shared {
			l.Debug("Joined in-flight generation", zap.String("key", key))
		}
		if err := json.Unmarshal(res.Val.([]byte), out); err != nil {
			return domain.NewInternalError("failed to decode generated content", err)
		}
		return nil
	}
}

func (g *Generator) lookup(ctx context.Context, key string) (string, bool) {
	if g.cache == nil {
		return "", false
	}
	val, err := g.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return val, true
}

func (g *Generator) store(ctx context.Context, key string, value []byte) {
	if g.cache == nil || g.cfg.CacheTTL <= 0 {
		return
	}
	if err := g.cache.Set(ctx, key, string(value), g.cfg.CacheTTL); err != nil {
		logger.Get().Warn("Failed to cache generation", zap.String("key", key), zap.Error(err))
	}
}

var (
	_ domain.QuizGenerationService       = (*Generator)(nil)
	_ domain.CurriculumGenerationService = (*Generator)(nil)
)
