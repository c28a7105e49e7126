package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/ada/backend/config"
	"github.com/pageza/ada/backend/internal/database"
	"github.com/pageza/ada/backend/internal/metrics"
	"github.com/pageza/ada/backend/internal/middleware"
	"github.com/pageza/ada/backend/internal/router"
	"github.com/pageza/ada/backend/internal/service"
	"github.com/pageza/ada/backend/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	cfg     *config.Config
	router  *gin.Engine
	http    *http.Server
	store   storage.Store
	closers []func() error
}

// Options replace parts of the default wiring
type Options struct {
	Store     storage.Store
	Generator service.PlanGenerator
	Objects   service.ObjectStorage
}

// New creates a server with storage, the generative client and object
// storage built from the configuration
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	return NewWithOptions(ctx, cfg, Options{})
}

// NewWithOptions creates a server, using the given components where set
func NewWithOptions(ctx context.Context, cfg *config.Config, opts Options) (*Server, error) {
	metrics.Register()

	s := &Server{cfg: cfg}

	var redisClient *redis.Client
	if opts.Store != nil {
		s.store = opts.Store
	} else {
		store, client, err := s.openStore()
		if err != nil {
			return nil, err
		}
		s.store = store
		redisClient = client
	}

	generator := opts.Generator
	if generator == nil {
		gemini, err := service.NewGeminiClient(service.GeminiOptions{
			APIKey:  cfg.GeminiAPIKey,
			APIURL:  cfg.GeminiAPIURL,
			Model:   cfg.GeminiModel,
			Timeout: cfg.GeminiTimeout,
		})
		if err != nil {
			s.close()
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		generator = gemini
	}

	objects := opts.Objects
	if objects == nil {
		s3, err := config.NewS3Config(ctx)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("failed to configure S3: %w", err)
		}
		// a nil *S3Config must not end up inside the interface
		if s3 != nil {
			objects = s3
		} else {
			log.Printf("[Server] S3_BUCKET_NAME not set, plan export disabled")
		}
	}

	accounts := service.NewAccountService(s.store)
	sessions := service.NewSessionService(s.store, accounts, generator, cfg.JWTSecret, cfg.SessionTTL)

	s.router = router.SetupRouter(router.Dependencies{
		Store:             s.store,
		Sessions:          sessions,
		Tracker:           service.NewWeightTracker(s.store),
		Exporter:          service.NewPlanExporter(objects, 0),
		Generator:         generator,
		GenerationLimiter: middleware.NewGenerationRateLimiter(redisClient, cfg.GenerationLimit, cfg.GenerationWindow),
		CORSOrigins:       cfg.CORSOrigins,
	})

	return s, nil
}

// openStore builds the configured storage backend. The Redis client is
// returned so the rate limiter can share it.
func (s *Server) openStore() (storage.Store, *redis.Client, error) {
	switch s.cfg.StorageBackend {
	case config.StorageMemory:
		log.Printf("[Server] Using in-memory storage, data is lost on restart")
		return storage.NewMemoryStore(), nil, nil
	case config.StorageRedis:
		client, err := database.NewRedisClient(s.cfg)
		if err != nil {
			return nil, nil, err
		}
		s.closers = append(s.closers, client.Close)
		return storage.NewRedisStore(client), client, nil
	case config.StoragePostgres, config.StorageSQLite:
		db, err := database.New(s.cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		s.closers = append(s.closers, sqlDB.Close)
		if err := database.RunMigrations(db); err != nil {
			s.close()
			return nil, nil, err
		}
		return storage.NewSQLStore(db), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %s", s.cfg.StorageBackend)
	}
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and blocks until the server stops
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("[Server] Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and releases storage connections
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if cerr := s.close(); err == nil {
		err = cerr
	}
	return err
}

func (s *Server) close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
