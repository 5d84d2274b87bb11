package domain

import "context"

// QuizGenerationService produces a repaired quiz from a generative model.
type QuizGenerationService interface {
	GenerateQuiz(ctx context.Context, req QuizGenerationRequest) (*QuizGenerationResult, error)
}

// CurriculumGenerationService produces curriculum content for a topic.
type CurriculumGenerationService interface {
	GenerateCurriculum(ctx context.Context, topic string) (*CurriculumContent, error)
}
