package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"edu-quiz/cmd/seed_initial_data/internal/seedmodels"
	"edu-quiz/internal/config"
	"edu-quiz/internal/database"
	"edu-quiz/internal/domain"
	"edu-quiz/internal/logger"
	"edu-quiz/internal/repository"

	"go.uber.org/zap"
)

const (
	seedFilePath = "configs/seed_data/initial_curriculum.json"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	seeds, err := loadSeedFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to load seed data", zap.String("path", seedFilePath), zap.Error(err))
	}
	log.Info("Loaded seed data", zap.Int("modules_loaded", len(seeds)))

	created, err := seedModules(ctx,
		repository.NewCurriculumDatabaseAdapter(db),
		repository.NewTransactionManagerAdapter(db),
		seeds,
	)
	if err != nil {
		log.Fatal("Seeding failed, transaction rolled back", zap.Error(err))
	}
	log.Info("Initial data seeding process completed.", zap.Int("modules_created", created))
}

func loadSeedFile(path string) ([]seedmodels.SeedModule, error) {
	byteValue, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var seeds []seedmodels.SeedModule
	if err := json.Unmarshal(byteValue, &seeds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed data: %w", err)
	}
	return seeds, nil
}

// seedModules saves every seed module whose title is not already present.
// It returns how many modules were created.
func seedModules(ctx context.Context, repo domain.CurriculumRepository, tm domain.TransactionManager, seeds []seedmodels.SeedModule) (int, error) {
	created := 0
	err := tm.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := repo.ListModules(ctx)
		if err != nil {
			return err
		}
		titles := make(map[string]bool, len(existing))
		for _, m := range existing {
			titles[strings.ToLower(m.Title)] = true
		}

		for _, seed := range seeds {
			key := strings.ToLower(seed.Title)
			if titles[key] {
				logger.Get().Info("Module exists, skipping", zap.String("title", seed.Title))
				continue
			}
			module := seed.ToDomain()
			if err := repo.SaveModule(ctx, module); err != nil {
				return fmt.Errorf("failed to save module %q: %w", seed.Title, err)
			}
			titles[key] = true
			created++
			logger.Get().Info("Created module", zap.String("id", module.ID), zap.String("title", module.Title), zap.Int("lessons", len(module.Lessons)))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
