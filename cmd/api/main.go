package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"ergasia-marketplace/config"
	_ "ergasia-marketplace/docs" // Important for Swagger
	"ergasia-marketplace/internal/cache"
	"ergasia-marketplace/internal/delivery/http/middleware"
	v1 "ergasia-marketplace/internal/delivery/http/v1"
	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/internal/draftstore"
	"ergasia-marketplace/internal/faceauth"
	"ergasia-marketplace/internal/filter"
	"ergasia-marketplace/internal/recommend"
	"ergasia-marketplace/internal/repository/postgres"
	"ergasia-marketplace/internal/scheduler"
	"ergasia-marketplace/internal/usecase"
	"ergasia-marketplace/internal/wizard"
	"ergasia-marketplace/pkg/auth"
	"ergasia-marketplace/pkg/database"
	"ergasia-marketplace/pkg/logger"
	pkgredis "ergasia-marketplace/pkg/redis"
	"ergasia-marketplace/pkg/security"
	"ergasia-marketplace/pkg/validation"
)

// @title           Ergasia Marketplace API
// @version         1.0
// @description     Freelance job marketplace: discovery, posting wizard, recommendations, wallet and face login.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting ergasia API", "port", cfg.Port)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	var rdb *goredis.Client
	rdb, err = pkgredis.NewClient(ctx, pkgredis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case errors.Is(err, pkgredis.ErrNotConfigured):
		rdb = nil
	case err != nil:
		logger.Log.Warn("Redis unavailable, falling back to in-memory state", "error", err)
		rdb = nil
	default:
		defer rdb.Close()
		logger.Log.Info("Redis connection established")
	}

	// 5. Setup Repositories
	jobRepo := postgres.NewJobRepository(dbPool)
	categoryRepo := postgres.NewCategoryRepository(dbPool)
	clickRepo := postgres.NewClickRepository(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)
	txRepo := postgres.NewTransactionRepository(dbPool)

	categoryCache := cache.NewCategoryCache(categoryRepo, rdb, cfg.CategoryCacheTTL)

	tasks := scheduler.New(time.Minute)

	var drafts domain.DraftStore
	if rdb != nil {
		drafts = draftstore.NewRedisStore(rdb, cfg.WizardDraftTTL)
	} else {
		memDrafts := draftstore.NewMemoryStore(cfg.WizardDraftTTL)
		if err := tasks.Add(ctx, "draft-sweep", cfg.DraftSweepSpec, func(ctx context.Context) error {
			_, err := memDrafts.Sweep(ctx)
			return err
		}); err != nil {
			logger.Log.Error("Invalid draft sweep schedule", "error", err)
			os.Exit(1)
		}
		drafts = memDrafts
	}

	// 6. Setup Services
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	ranker := recommend.NewHTTPClient(cfg.RecommenderURL, cfg.RecommenderTimeout)
	selector := recommend.NewSelector(clickRepo, ranker, recommend.WithPageSize(cfg.RecommendationSize))
	faceClient := faceauth.NewClient(cfg.FaceServiceURL, cfg.FaceServiceTimeout)
	validate := validation.New()
	machine := wizard.New(validate)

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, categoryCache)
	jobUC := usecase.NewJobUsecase(jobRepo, categoryUC, validate, filter.ParseSearchMode(cfg.SearchMode), cfg.JobsPerPage)
	clickUC := usecase.NewClickUsecase(clickRepo, jobRepo)
	freelancerUC := usecase.NewFreelancerUsecase(userRepo, cfg.JobsPerPage)
	recommendationUC := usecase.NewRecommendationUsecase(jobUC, categoryCache, selector)
	wizardUC := usecase.NewWizardUsecase(drafts, machine, jobUC)
	walletUC := usecase.NewWalletUsecase(txRepo)
	faceUC := usecase.NewFaceUsecase(faceClient, tokens, cfg.FaceImageMaxDim)

	pingers := map[string]usecase.Pinger{"database": dbPool}
	if rdb != nil {
		pingers["redis"] = usecase.PingFunc(func(ctx context.Context) error {
			return pkgredis.HealthCheck(ctx, rdb)
		})
	}
	healthUC := usecase.NewHealthUsecase(pingers)

	// 8. Setup Rate Limiters
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	globalLimit := middleware.NewRateLimiter(rdb, middleware.DefaultRateLimitConfig(cfg.RateLimitGlobalThreshold, window))
	faceLimit := middleware.NewRateLimiter(rdb, middleware.FaceRateLimitConfig(cfg.RateLimitFaceThreshold, window, cfg.RateLimitFaceFailClosed))
	faceGuard := security.NewLoginTracker(rdb, security.LoginTrackerConfig{
		MaxAttempts:   cfg.FaceLoginMaxAttempts,
		AttemptWindow: cfg.FaceLoginBlock,
		BlockDuration: cfg.FaceLoginBlock,
	})

	// 9. Schedule maintenance
	if err := tasks.Add(ctx, "category-refresh", cfg.CategoryRefreshSpec, func(ctx context.Context) error {
		_, err := categoryCache.Refresh(ctx)
		return err
	}); err != nil {
		logger.Log.Error("Invalid category refresh schedule", "error", err)
		os.Exit(1)
	}
	sweepSpec := "@every " + window.String()
	for name, limiter := range map[string]*middleware.RateLimiter{"global": globalLimit, "face": faceLimit} {
		if err := tasks.Add(ctx, "rate-limit-sweep-"+name, sweepSpec, func(ctx context.Context) error {
			_, err := limiter.Sweep(ctx)
			return err
		}); err != nil {
			logger.Log.Error("Invalid rate limit sweep schedule", "error", err)
			os.Exit(1)
		}
	}
	if rdb == nil {
		if err := tasks.Add(ctx, "face-login-sweep", sweepSpec, func(ctx context.Context) error {
			_, err := faceGuard.Sweep(ctx)
			return err
		}); err != nil {
			logger.Log.Error("Invalid face login sweep schedule", "error", err)
			os.Exit(1)
		}
	}
	tasks.Start()

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		HealthUC:         healthUC,
		AuthUC:           authUC,
		JobUC:            jobUC,
		CategoryUC:       categoryUC,
		ClickUC:          clickUC,
		FreelancerUC:     freelancerUC,
		RecommendationUC: recommendationUC,
		WizardUC:         wizardUC,
		WalletUC:         walletUC,
		FaceUC:           faceUC,
		Tokens:           tokens,
		AllowedOrigins:   []string{cfg.FrontendURL},
		Production:       gin.Mode() == gin.ReleaseMode,
		GlobalLimit:      globalLimit,
		FaceLimit:        faceLimit,
		FaceGuard:        faceGuard,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	tasks.Stop(shutdownCtx)
	stop()

	logger.Log.Info("Server exiting")
}
