package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Mooujj/quiz-hub/internal/catalog"
	"github.com/Mooujj/quiz-hub/internal/config"
	"github.com/Mooujj/quiz-hub/internal/database"
	"github.com/Mooujj/quiz-hub/internal/logger"
	"github.com/Mooujj/quiz-hub/internal/model"
	"github.com/Mooujj/quiz-hub/internal/repository"
	"github.com/Mooujj/quiz-hub/internal/validator"
)

// upserter is implemented by both catalog repositories.
type upserter interface {
	UpsertAll(ctx context.Context, quizzes []model.QuizDefinition) error
}

func main() {
	cfg := config.Load()

	var (
		file   string
		target string
	)
	flag.StringVar(&file, "file", cfg.CatalogPath, "Catalog JSON file to import")
	flag.StringVar(&target, "target", config.CatalogSourcePostgres, "Database to seed: postgres or sqlite")
	flag.Parse()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	validator.Setup()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	f, err := os.Open(file)
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("Failed to open catalog file")
	}
	quizzes, err := catalog.Decode(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to decode catalog")
	}
	if err := catalog.Validate(quizzes); err != nil {
		log.Fatal().Err(err).Msg("Catalog is invalid")
	}

	var repo upserter
	switch target {
	case config.CatalogSourcePostgres:
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		repo = repository.NewQuizRepository(pool)
	case config.CatalogSourceSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.SQLitePath).Msg("Failed to open SQLite database")
		}
		defer db.Close()
		sqliteRepo := repository.NewQuizSQLiteRepository(db)
		if err := sqliteRepo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to create SQLite schema")
		}
		repo = sqliteRepo
	default:
		log.Fatal().Str("target", target).Msg("Unknown seed target")
	}

	fmt.Printf("=== Seeding %d quizzes into %s ===\n", len(quizzes), target)

	if err := repo.UpsertAll(ctx, quizzes); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed catalog")
	}

	for i, q := range quizzes {
		fmt.Printf("%3d. %-30s %d questions\n", i+1, q.ID, len(q.Questions))
	}
	fmt.Printf("\nSeed completed! Upserted %d quizzes.\n", len(quizzes))
}
