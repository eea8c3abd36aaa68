package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"spiegelmatch/internal/catalog"
	"spiegelmatch/internal/config"
	"spiegelmatch/internal/db"
	apihttp "spiegelmatch/internal/http"
	"spiegelmatch/internal/repository"
	"spiegelmatch/internal/service"
	"spiegelmatch/internal/taxonomy"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	if cfg.LogDevelopment {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	cat, err := catalog.Default()
	if err != nil {
		logger.Fatal("load archetype catalog", zap.Error(err))
	}
	tax, err := taxonomy.Default()
	if err != nil {
		logger.Fatal("load taxonomy", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()
	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	characterRepo := repository.NewPgCharacterRepository(pool)
	matchRepo := repository.NewPgMatchRepository(pool)

	var (
		generateLimiter service.RateLimiter
		matchLimiter    service.RateLimiter
		matchCache      service.MatchCache
		redisClient     *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, falling back to in-memory limiter and cache", zap.Error(err))
		} else {
			generateLimiter = service.NewRedisRateLimiter(redisClient, "generate", cfg.GenerateRateWindow, cfg.GenerateRateLimit)
			matchLimiter = service.NewRedisRateLimiter(redisClient, "match", cfg.MatchRateWindow, cfg.MatchRateLimit)
			matchCache = service.NewRedisMatchCache(redisClient)
		}
		cancel()
	}
	if generateLimiter == nil {
		generateLimiter = service.NewMemoryRateLimiter(cfg.GenerateRateWindow, cfg.GenerateRateLimit)
		matchLimiter = service.NewMemoryRateLimiter(cfg.MatchRateWindow, cfg.MatchRateLimit)
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAccessTTL)
	generator := service.NewCharacterGenerator(cat, tax)
	characterSvc := service.NewCharacterService(logger, generator, characterRepo, generateLimiter)
	matchSvc := service.NewMatchService(logger, characterRepo, matchRepo, service.NewMatchingEngine(), service.MatchServiceOptions{
		Cache:    matchCache,
		CacheTTL: cfg.MatchCacheTTL,
		Limiter:  matchLimiter,
	})

	router := apihttp.NewRouter(logger, jwtSvc,
		apihttp.NewCharacterHandler(logger, characterSvc),
		apihttp.NewMatchHandler(logger, matchSvc),
		apihttp.NewTaxonomyHandler(tax),
		apihttp.NewHealthHandler(logger, pool),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.Int("archetypes", len(cat.Archetypes)),
		zap.Int("taxonomy_tags", tax.TotalTags()),
		zap.Bool("auth", jwtSvc.Enabled()),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
