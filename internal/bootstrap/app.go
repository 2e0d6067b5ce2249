package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resumegen/internal/credentials"
	"resumegen/internal/generateddocs"
	"resumegen/internal/generation"
	"resumegen/internal/llm"
	openai "resumegen/internal/llm/openai"
	"resumegen/internal/shared/config"
	"resumegen/internal/shared/metrics"
	"resumegen/internal/shared/server"
	"resumegen/internal/shared/storage/db"
	"resumegen/internal/shared/storage/object"
	localstore "resumegen/internal/shared/storage/object/local"
	miniostore "resumegen/internal/shared/storage/object/minio"
	s3store "resumegen/internal/shared/storage/object/s3"
	"resumegen/resume/render"
)

// App holds shared dependencies and the configured router.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Store    object.Store
	Metrics  *metrics.Recorder
	Verifier *credentials.Verifier

	Content           llm.ContentGenerator
	Renderer          render.Renderer
	GenerationService *generation.Service
	HistoryService    *generateddocs.Service
}

// Overrides replaces collaborators that are otherwise built from Config.
type Overrides struct {
	Content  llm.ContentGenerator
	Renderer render.Renderer
	Store    object.Store
}

// Build prepares dependencies and the router from cfg.
func Build(cfg config.Config) (*App, error) {
	return BuildWith(context.Background(), cfg, Overrides{})
}

// BuildWith is Build with explicit collaborators, used by tests and the CLI.
func BuildWith(ctx context.Context, cfg config.Config, o Overrides) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	rec, err := metrics.New()
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := o.Store
	if store == nil {
		if store, err = buildStore(ctx, cfg); err != nil {
			return nil, err
		}
	}

	verifier, err := buildVerifier(cfg, sqlDB)
	if err != nil {
		return nil, err
	}

	content := o.Content
	if content == nil {
		content, err = buildContentGenerator(cfg)
		if err != nil {
			return nil, err
		}
	}

	renderer := o.Renderer
	if renderer == nil {
		renderer = render.NewChromeRenderer(cfg.ChromeBin, cfg.RenderTimeout)
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Metrics:  rec,
		Verifier: verifier,
		Content:  content,
		Renderer: renderer,
	}

	app.GenerationService = generation.NewService(content, renderer)
	app.GenerationService.Metrics = rec

	var historyHandler *generateddocs.Handler
	if store != nil {
		var repo generateddocs.Repo = generateddocs.NewMemoryRepo()
		if sqlDB != nil {
			repo = &generateddocs.PGRepo{DB: sqlDB}
		}
		app.HistoryService = generateddocs.NewService(repo, store)
		app.GenerationService.History = app.HistoryService
		historyHandler = generateddocs.NewHandler(app.HistoryService)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:     cfg,
		Metrics:    rec,
		Verifier:   verifier,
		Generation: generation.NewHandler(app.GenerationService, verifier),
		History:    historyHandler,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		if cfg.CredentialSource == config.CredentialsDB {
			return nil, fmt.Errorf("CREDENTIAL_SOURCE=db requires DATABASE_URL")
		}
		return nil, nil
	}

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		if cfg.IsDevLike() && cfg.CredentialSource != config.CredentialsDB {
			log.Printf("bootstrap: database connect failed; using in-memory history: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case config.StoreMemory:
		return object.NewMemoryStore(), nil
	case config.StoreLocal:
		return localstore.New(cfg.LocalStoreDir), nil
	case config.StoreS3:
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case config.StoreMinio:
		return miniostore.New(ctx, miniostore.Options{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
		})
	default:
		return nil, nil
	}
}

func buildVerifier(cfg config.Config, sqlDB *sql.DB) (*credentials.Verifier, error) {
	if cfg.CredentialSource == config.CredentialsDB {
		if sqlDB == nil {
			return nil, fmt.Errorf("CREDENTIAL_SOURCE=db requires a database")
		}
		return credentials.NewMasterPasswordVerifier(&credentials.PGStore{DB: sqlDB}), nil
	}
	return credentials.NewMasterPasswordVerifier(credentials.EnvStore{}), nil
}

func buildContentGenerator(cfg config.Config) (llm.ContentGenerator, error) {
	if cfg.OpenAIAPIKey == "" {
		if !cfg.IsDevLike() {
			return nil, fmt.Errorf("OPENAI_API_KEY is required")
		}
		log.Printf("bootstrap: OPENAI_API_KEY empty; generation requests will fail")
		return llm.PlaceholderGenerator{}, nil
	}
	return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
}
