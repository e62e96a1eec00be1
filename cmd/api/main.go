package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"saju-api/internal/almanac"
	"saju-api/internal/config"
	apihttp "saju-api/internal/http"
	"saju-api/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	alm, err := almanac.Open(cfg.Almanac.TablePath, cfg.Almanac.TableFrom, cfg.Almanac.TableTo)
	if err != nil {
		logger.Fatal("almanac init", zap.Error(err))
	}

	cacheTTL := time.Duration(cfg.ChartCacheTTLMinutes) * time.Minute
	var (
		chartCache  service.ChartCache
		revocations service.RevocationStore
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			chartCache = service.NewRedisChartCache(redisClient, cacheTTL)
			revocations = service.NewRedisRevocationStore(redisClient)
		}
		cancel()
	}
	if chartCache == nil {
		chartCache = service.NewMemoryChartCache(cacheTTL)
	}

	resolver := service.NewCalendarResolver(alm)
	chartSvc := service.NewChartService(resolver, chartCache, logger)

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		cfg.JWTIssuer,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		revocations,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}
	clientAuth := service.NewClientAuthService(logger, cfg.APIClients, jwtSvc)

	var guard *service.JWTService
	if cfg.AuthRequired {
		guard = jwtSvc
	} else {
		logger.Warn("auth disabled for /v1 routes")
	}

	authHandler := apihttp.NewAuthHandler(logger, clientAuth, jwtSvc)
	chartHandler := apihttp.NewChartHandler(logger, chartSvc)
	router := apihttp.NewRouter(logger, authHandler, chartHandler, guard)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.Int("table_from", cfg.Almanac.TableFrom),
		zap.Int("table_to", cfg.Almanac.TableTo),
		zap.Int("api_clients", len(cfg.APIClients)),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
