package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ArowuTest/lotto645-backend/internal/config"
	"github.com/ArowuTest/lotto645-backend/internal/engine"
	"github.com/ArowuTest/lotto645-backend/internal/repositories"
	"github.com/ArowuTest/lotto645-backend/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/lotto645-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/lotto645-backend/internal/services"
	"github.com/ArowuTest/lotto645-backend/pkg/events"
	"github.com/ArowuTest/lotto645-backend/pkg/kvstore"
	"github.com/ArowuTest/lotto645-backend/pkg/lottoapi"
	"github.com/ArowuTest/lotto645-backend/pkg/mongodb"
)

// App holds the wired services shared by the API server and the CLI
type App struct {
	Config *config.Config

	Store        *engine.DrawStore
	Official     *lottoapi.Client
	DrawRepo     repositories.DrawRepository
	FeaturedRepo repositories.FeaturedDrawRepository
	AdminRepo    repositories.AdminUserRepository

	DrawService        *services.DrawServiceImpl
	CombinationService *services.CombinationServiceImpl
	PredictionService  *services.PredictionServiceImpl
	AuthService        *services.AuthServiceImpl

	mongoClient *mongodb.Client
	cache       *kvstore.BadgerStore
	emitter     events.Emitter
}

// New connects the backing stores named in cfg and builds the services.
// An empty MongoDB URI selects in-memory repositories, an empty cache dir an
// in-memory Badger and an empty NATS URL disables event publishing.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, Store: engine.NewDrawStore()}

	// 1. Repositories
	if cfg.MongoDB.URI != "" {
		client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		a.mongoClient = client
		db := client.Database(cfg.MongoDB.Database)
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create indexes: %w", err)
		}
		a.DrawRepo = mongorepo.NewDrawRepository(db)
		a.FeaturedRepo = mongorepo.NewFeaturedDrawRepository(db)
		a.AdminRepo = mongorepo.NewAdminUserRepository(db)
		slog.Info("Connected to MongoDB", "database", cfg.MongoDB.Database)
	} else {
		a.DrawRepo = memory.NewDrawRepository()
		a.FeaturedRepo = memory.NewFeaturedDrawRepository()
		a.AdminRepo = memory.NewAdminUserRepository()
		slog.Warn("MongoDB URI not set, using in-memory repositories")
	}

	// 2. Local cache for official responses and the dataset snapshot
	cache, err := kvstore.NewBadgerStore(cfg.Cache.Dir, "lotto645")
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	a.cache = cache

	// 3. Event publishing
	var pub events.Publisher = events.Nop{}
	if cfg.NATS.URL != "" {
		natsPub, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("NATS unavailable, events disabled", "url", cfg.NATS.URL, "error", err)
		} else {
			pub = natsPub
		}
	}
	a.emitter = events.NewEmitter(pub, cfg.NATS.SubjectPrefix)

	// 4. Official results client
	a.Official = lottoapi.NewClient(cfg.LottoAPI.BaseURL, cfg.LottoAPI.MockAPI, cache)
	a.Official.SetTimeout(cfg.LottoAPI.Timeout)
	if cfg.LottoAPI.MaxRetries > 0 {
		a.Official.MaxRetries = cfg.LottoAPI.MaxRetries
	}
	if cfg.LottoAPI.CacheTTL > 0 {
		a.Official.CacheTTL = cfg.LottoAPI.CacheTTL
	}

	// 5. Services
	a.DrawService = services.NewDrawService(a.Store, a.DrawRepo, a.FeaturedRepo, a.Official, cache, a.emitter)
	a.CombinationService = services.NewCombinationService(a.DrawService, a.emitter, cfg.Engine.DefaultWindow, cfg.Engine.HighThreshold)
	a.PredictionService = services.NewPredictionService(a.DrawService, cfg.Engine.PredictWindow, cfg.Engine.PredictCount)
	a.AuthService = services.NewAuthService(a.AdminRepo, cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresIn)*time.Second)

	return a, nil
}

// Close releases every connection New opened
func (a *App) Close() {
	if a.emitter != nil {
		a.emitter.Close()
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			slog.Warn("Failed to close cache", "error", err)
		}
	}
	if a.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}
}
