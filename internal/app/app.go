// Package app wires configuration, storage, the feed client and the
// services into runnable units for the binaries.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/scorepipe/scorepipe/external/flashfeed"
	"github.com/scorepipe/scorepipe/internal/config"
	mongorepo "github.com/scorepipe/scorepipe/internal/infrastructure/repository/mongo"
	"github.com/scorepipe/scorepipe/internal/infrastructure/search/elastic"
	"github.com/scorepipe/scorepipe/internal/interfaces/httpapi"
	"github.com/scorepipe/scorepipe/internal/normalizer"
	"github.com/scorepipe/scorepipe/internal/platform/cache"
	"github.com/scorepipe/scorepipe/internal/platform/logging"
	"github.com/scorepipe/scorepipe/internal/platform/resilience"
	"github.com/scorepipe/scorepipe/internal/usecase"
)

// Stores bundles the storage handles shared by the API and the pipeline.
type Stores struct {
	mongoClient *mongodriver.Client
	DB          *mongodriver.Database
	Search      *elastic.Store

	MatchRepo    *mongorepo.MatchRepository
	StandingRepo *mongorepo.StandingRepository
	BracketRepo  *mongorepo.BracketRepository
	TrackerRepo  *mongorepo.TrackerRepository
}

// OpenStores connects the document store and the search cluster and builds
// the repositories on top.
func OpenStores(ctx context.Context, cfg config.Config) (*Stores, error) {
	client, db, err := mongorepo.Connect(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoTimeout)
	if err != nil {
		return nil, err
	}
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure document indexes: %w", err)
	}

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.ElasticsearchAddrs,
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("build search client: %w", err)
	}

	return &Stores{
		mongoClient:  client,
		DB:           db,
		Search:       elastic.NewStore(esClient, cfg.ElasticsearchIndex),
		MatchRepo:    mongorepo.NewMatchRepository(db),
		StandingRepo: mongorepo.NewStandingRepository(db),
		BracketRepo:  mongorepo.NewBracketRepository(db),
		TrackerRepo:  mongorepo.NewTrackerRepository(db),
	}, nil
}

func (s *Stores) Close(ctx context.Context) error {
	return s.mongoClient.Disconnect(ctx)
}

// Pipeline groups the write-side services for the collection binary.
type Pipeline struct {
	Ingest    *usecase.IngestService
	Index     *usecase.IndexService
	Bootstrap *usecase.BootstrapService
}

func NewPipeline(cfg config.Config, stores *Stores, logger *logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Default()
	}

	feedClient := flashfeed.NewClient(flashfeed.ClientConfig{
		BaseURL:    cfg.FeedBaseURL,
		Sign:       cfg.FeedSign,
		Timeout:    cfg.FeedTimeout,
		MaxRetries: cfg.FeedMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
	})

	norm := normalizer.New(normalizer.Config{
		LogoBaseURL: flashfeed.LogoBaseURL(),
	})

	ingest := usecase.NewIngestService(
		feedClient,
		norm,
		stores.MatchRepo,
		stores.StandingRepo,
		stores.BracketRepo,
		logger,
	)
	index := usecase.NewIndexService(stores.MatchRepo, stores.Search, cfg.IndexWorkers, logger)
	bootstrap := usecase.NewBootstrapService(ingest, index, stores.TrackerRepo, usecase.BootstrapConfig{
		DaysBack:  cfg.BootstrapDaysBack,
		DaysAhead: cfg.BootstrapDaysAhead,
	}, logger)

	return &Pipeline{
		Ingest:    ingest,
		Index:     index,
		Bootstrap: bootstrap,
	}
}

// NewHTTPServer builds the read API on top of already-open stores.
func NewHTTPServer(cfg config.Config, stores *Stores, logger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var queryCache *cache.Store
	if cfg.CacheEnabled {
		queryCache = cache.NewStore(cfg.CacheTTL)
	}

	querySvc := usecase.NewQueryService(stores.MatchRepo, stores.StandingRepo, stores.BracketRepo)
	searchSvc := usecase.NewSearchService(stores.Search, queryCache, nil)
	progressSvc := usecase.NewProgressService(stores.TrackerRepo, nil)

	handler := httpapi.NewHandler(querySvc, searchSvc, progressSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
