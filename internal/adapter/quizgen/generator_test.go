package quizgen

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"edu-quiz/internal/adapter"
	"edu-quiz/internal/domain"
	"edu-quiz/internal/llm"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryCache) Ping(context.Context) error { return nil }

const multiplicationQuiz = `Tabii! {"questions":[{"question":"8 × 2 = ?","options":["14","18","12","10"],"correctAnswer":1}]}`

func quizRequest() domain.QuizGenerationRequest {
	return domain.QuizGenerationRequest{Title: "Çarpma", Grade: "2", Difficulty: domain.DifficultyEasy, QuestionCount: 1}
}

func TestGenerator_GenerateQuizRepairsAndCaches(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Content: multiplicationQuiz})
	mc := newMemoryCache()
	g := NewGenerator(provider, mc, Config{Locale: "tr", CacheTTL: time.Hour})

	result, err := g.GenerateQuiz(context.Background(), quizRequest())
	require.NoError(t, err)
	require.Len(t, result.Questions, 1)
	q := result.Questions[0]
	assert.Equal(t, []string{"16", "18", "12", "10"}, q.Options)
	assert.Equal(t, 0, q.CorrectAnswerIndex)
	assert.Equal(t, "8 çarpı 2 işleminin sonucu 16 eder.", q.Explanation)

	again, err := g.GenerateQuiz(context.Background(), quizRequest())
	require.NoError(t, err)
	assert.Equal(t, result, again)
	assert.Equal(t, 1, provider.CallCount())

	require.Len(t, mc.ttls, 1)
	for key, ttl := range mc.ttls {
		assert.Contains(t, key, "eduquiz:quizgen:quiz:")
		assert.Equal(t, time.Hour, ttl)
	}
}

func TestGenerator_PromptCarriesRequest(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Content: `{"questions":[]}`})
	g := NewGenerator(provider, nil, Config{DefaultCount: 7})

	_, err := g.GenerateQuiz(context.Background(), domain.QuizGenerationRequest{Title: "Toplama", Grade: "3", Difficulty: domain.DifficultyHard})
	require.NoError(t, err)

	require.Equal(t, 1, provider.CallCount())
	call := provider.Calls[0]
	assert.True(t, call.JSON)
	assert.Equal(t, quizSystemPrompt, call.System)
	prompt := call.Messages[0].Content
	assert.Contains(t, prompt, "Toplama konusu için 7 adet soru oluştur.")
	assert.Contains(t, prompt, "İlkokul 3. sınıf")
	assert.Contains(t, prompt, "Zorluk Seviyesi: Zor")
	assert.Contains(t, prompt, "Toplam 7 soru oluştur")
}

func TestGenerator_EnglishLocalePerRequest(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Content: `{"questions":[{"question":"12 ÷ 3 = ?","options":["3","5"],"correctAnswer":0}]}`})
	g := NewGenerator(provider, nil, Config{Locale: "tr"})

	req := quizRequest()
	req.Locale = "en"
	result, err := g.GenerateQuiz(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, provider.Calls[0].Messages[0].Content, "Write 1 questions on the topic")
	q := result.Questions[0]
	assert.Equal(t, "4", q.CorrectOption())
	assert.Equal(t, "12 divided by 3 equals 4.", q.Explanation)
}

func TestGenerator_ProviderErrorIsLLMServiceError(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	g := NewGenerator(provider, newMemoryCache(), Config{CacheTTL: time.Hour})

	_, err := g.GenerateQuiz(context.Background(), quizRequest())
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeLLMServiceError))
	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestGenerator_MalformedOutputIsNotCached(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Content: "Sorry, I cannot help with that."},
		llm.MockResponse{Content: multiplicationQuiz},
	)
	mc := newMemoryCache()
	g := NewGenerator(provider, mc, Config{CacheTTL: time.Hour})

	_, err := g.GenerateQuiz(context.Background(), quizRequest())
	assert.True(t, domain.IsCode(err, domain.CodeMalformedResponse))
	assert.Empty(t, mc.data)

	result, err := g.GenerateQuiz(context.Background(), quizRequest())
	require.NoError(t, err)
	assert.Equal(t, "16", result.Questions[0].CorrectOption())
}

func TestGenerator_InvalidSchema(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Content: `{"questions":[{"question":"8 × 2 = ?"}]}`})
	g := NewGenerator(provider, nil, Config{})

	_, err := g.GenerateQuiz(context.Background(), quizRequest())
	assert.True(t, domain.IsCode(err, domain.CodeInvalidSchema))
}

func TestGenerator_ServesFromRedis(t *testing.T) {
	db, mock := redismock.NewClientMock()
	provider := llm.NewMockProvider()
	g := NewGenerator(provider, adapter.NewRedisCacheAdapter(db), Config{Locale: "tr", CacheTTL: time.Hour})

	req := quizRequest()
	req.QuestionCount = 1
	key := quizCacheKeyFor(g, req)
	mock.ExpectGet(key).SetVal(`{"Title":"","Description":"","Questions":[{"question":"8 × 2 = ?","options":["16","14","18","12"],"correctAnswer":0}]}`)

	result, err := g.GenerateQuiz(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "16", result.Questions[0].CorrectOption())
	assert.Equal(t, 0, provider.CallCount())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerator_GenerateCurriculum(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Content: "```json\n" + `{"title":"Kesirler","description":"Kesirlere giriş","lessons":[{"title":"Yarım","content":"Bütünü ikiye bölmek","objectives":["Yarımı tanır"],"activities":["Elma kesme"],"duration":"45 dakika"},{"title":"Çeyrek","content":"Dörde bölmek"}]}` + "\n```"})
	g := NewGenerator(provider, newMemoryCache(), Config{CacheTTL: time.Hour})

	content, err := g.GenerateCurriculum(context.Background(), "Kesirler")
	require.NoError(t, err)
	assert.Equal(t, "Kesirler", content.Title)
	require.Len(t, content.Lessons, 2)
	assert.Equal(t, 1, content.Lessons[1].Position)
	assert.Equal(t, []string{"Yarımı tanır"}, content.Lessons[0].Objectives)
	assert.Contains(t, provider.Calls[0].Messages[0].Content, "Kesirler konusu için bir eğitim müfredatı oluştur.")

	cached, err := g.GenerateCurriculum(context.Background(), "Kesirler")
	require.NoError(t, err)
	assert.Equal(t, content, cached)
	assert.Equal(t, 1, provider.CallCount())
}

func TestGenerator_CurriculumMissingLessons(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Content: `{"title":"Kesirler"}`})
	g := NewGenerator(provider, nil, Config{})

	_, err := g.GenerateCurriculum(context.Background(), "Kesirler")
	assert.True(t, domain.IsCode(err, domain.CodeInvalidSchema))
}

type gatedProvider struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (p *gatedProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	if p.calls.Add(1) == 1 {
		close(p.entered)
	}
	<-p.release
	return &llm.Response{Content: multiplicationQuiz}, nil
}

func (p *gatedProvider) ModelID() string { return "gated" }

func TestGenerator_CollapsesConcurrentRequests(t *testing.T) {
	provider := &gatedProvider{entered: make(chan struct{}), release: make(chan struct{})}
	g := NewGenerator(provider, nil, Config{})

	const callers = 5
	var wg sync.WaitGroup
	results := make([]*domain.QuizGenerationResult, callers)
	errs := make([]error, callers)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = g.GenerateQuiz(context.Background(), quizRequest())
	}()
	<-provider.entered

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = g.GenerateQuiz(context.Background(), quizRequest())
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(provider.release)
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, "16", results[i].Questions[0].CorrectOption())
	}
	assert.Equal(t, int32(1), provider.calls.Load())

	// callers receive independent copies
	results[0].Questions[0].Options[0] = "mutated"
	assert.Equal(t, "16", results[1].Questions[0].Options[0])
}

func TestGenerator_CallerCancellation(t *testing.T) {
	provider := &gatedProvider{entered: make(chan struct{}), release: make(chan struct{})}
	g := NewGenerator(provider, nil, Config{})
	defer close(provider.release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-provider.entered
		cancel()
	}()

	_, err := g.GenerateQuiz(ctx, quizRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func quizCacheKeyFor(g *Generator, req domain.QuizGenerationRequest) string {
	locale := g.localeFor(req.Locale)
	return g.quizKey(buildQuizPrompt(req, locale), locale)
}
