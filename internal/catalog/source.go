package catalog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Mooujj/quiz-hub/internal/config"
	"github.com/Mooujj/quiz-hub/internal/database"
	"github.com/Mooujj/quiz-hub/internal/repository"
	"github.com/rs/zerolog"
)

// LoaderFromConfig builds the Loader named by CATALOG_SOURCE. The returned
// func releases any database handle and is never nil.
func LoaderFromConfig(ctx context.Context, cfg *config.Config, log zerolog.Logger) (Loader, func(), error) {
	noop := func() {}

	switch cfg.CatalogSource {
	case config.CatalogSourceFile:
		return FileLoader{Path: cfg.CatalogPath}, noop, nil

	case config.CatalogSourceHTTP:
		if cfg.CatalogURL == "" {
			return nil, noop, fmt.Errorf("CATALOG_URL is required for source %q", cfg.CatalogSource)
		}
		return HTTPLoader{URL: cfg.CatalogURL, Client: &http.Client{Timeout: cfg.CatalogTimeout}}, noop, nil

	case config.CatalogSourcePostgres:
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, noop, err
		}
		repo := repository.NewQuizRepository(pool)
		return RepositoryLoader{Repo: repo, Name: "postgres"}, pool.Close, nil

	case config.CatalogSourceSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		repo := repository.NewQuizSQLiteRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, noop, fmt.Errorf("ensure sqlite schema: %w", err)
		}
		return RepositoryLoader{Repo: repo, Name: "sqlite " + cfg.SQLitePath}, func() { db.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}
