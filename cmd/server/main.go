package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/honeyflow/hive-api/internal/auth"
	"github.com/honeyflow/hive-api/internal/config"
	"github.com/honeyflow/hive-api/internal/database"
	"github.com/honeyflow/hive-api/internal/handler"
	"github.com/honeyflow/hive-api/internal/queue"
	"github.com/honeyflow/hive-api/internal/repository"
	"github.com/honeyflow/hive-api/internal/router"
	"github.com/honeyflow/hive-api/internal/service"
)

func main() {
	_ = godotenv.Load() // optional .env for local development

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	codec, err := auth.NewTokenCodec(cfg.JWTSecret, time.Duration(cfg.TokenTTLDays)*24*time.Hour)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	users := repository.NewUserRepo(db)
	hives := repository.NewHiveRepo(db)
	comments := repository.NewCommentRepo(db)

	deps := router.Deps{
		Auth:      handler.NewAuthHandler(cfg, users, codec),
		Hives:     handler.NewHiveHandler(hives, comments, service.NewQueuePublisher()),
		External:  handler.NewExternalHandler(),
		Extractor: auth.NewExtractor(codec),
		Rdb:       config.NewRedisClient(),
		CacheCfg:  config.LoadCacheConfig(),
		RateCfg:   config.LoadRateLimitConfig(),
	}

	// Audit consumer runs for the life of the process and survives broker
	// outages on its own.
	go func() {
		if err := queue.StartHiveAuditConsumer(); err != nil {
			log.Printf("hive-audit consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, deps)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
