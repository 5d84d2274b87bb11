package main

import (
	"fmt"

	"edu-quiz/internal/adapter/quizgen"
	"edu-quiz/internal/config"
	"edu-quiz/internal/domain"
	"edu-quiz/internal/llm"
	"edu-quiz/internal/logger"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a quiz with the configured provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := generationRequest(cmd)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := logger.Initialize(cfg.Logger); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync()

			provider, err := llm.NewProvider(cmd.Context(), cfg.LLM)
			if err != nil {
				return fmt.Errorf("create provider: %w", err)
			}
			gen := quizgen.NewGenerator(provider, nil, quizgen.Config{
				Locale:       cfg.Quiz.Locale,
				DefaultCount: cfg.Quiz.DefaultQuestionCount,
				Timeout:      cfg.LLM.Timeout,
			})

			result, err := gen.GenerateQuiz(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeResult(cmd, cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().String("topic", "", "Quiz topic, used as the title (required)")
	cmd.Flags().String("grade", "", "Grade level 1-4 (required)")
	cmd.Flags().String("difficulty", string(domain.DifficultyMedium), "easy, medium or hard")
	cmd.Flags().Int("count", 0, "Number of questions, 1-20 (config default when 0)")
	_ = cmd.MarkFlagRequired("topic")
	_ = cmd.MarkFlagRequired("grade")
	return cmd
}

// generationRequest validates the generate flags.
func generationRequest(cmd *cobra.Command) (domain.QuizGenerationRequest, error) {
	topic, _ := cmd.Flags().GetString("topic")
	grade, _ := cmd.Flags().GetString("grade")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	locale, _ := cmd.Flags().GetString("locale")

	switch grade {
	case "1", "2", "3", "4":
	default:
		return domain.QuizGenerationRequest{}, fmt.Errorf("grade must be 1, 2, 3 or 4, got %q", grade)
	}
	switch domain.Difficulty(difficulty) {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
	default:
		return domain.QuizGenerationRequest{}, fmt.Errorf("difficulty must be easy, medium or hard, got %q", difficulty)
	}
	if count < 0 || count > 20 {
		return domain.QuizGenerationRequest{}, fmt.Errorf("count must be between 1 and 20, got %d", count)
	}

	return domain.QuizGenerationRequest{
		Title:         topic,
		Grade:         grade,
		Difficulty:    domain.Difficulty(difficulty),
		QuestionCount: count,
		Locale:        locale,
	}, nil
}
