package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"langconnect/config"
	"langconnect/internal/application/usecase"
	"langconnect/internal/domain"
	"langconnect/internal/infrastructure/cache"
	"langconnect/internal/infrastructure/repository"
	"langconnect/internal/infrastructure/security"
	"langconnect/internal/infrastructure/translate"
	"langconnect/internal/middleware"
	handlers "langconnect/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Friendship{},
		&domain.Chat{},
		&domain.Message{},
		&domain.Achievement{},
		&domain.UserAchievement{},
		&domain.Lesson{},
		&domain.UserLesson{},
		&domain.Gift{},
		&domain.GiftTransaction{},
		&domain.VipPlan{},
	); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}
	if err := repository.Seed(db); err != nil {
		log.Fatalf("Failed to seed catalogs: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	economyRepo := repository.NewEconomyRepository(db)

	presence := cache.NewPresenceCache(rdb)
	tokens := security.NewTokenManager(cfg.AccessSecret)
	limiter := middleware.NewRateLimiter(rdb)

	translateTimeout := time.Duration(cfg.TranslateTimeoutMS) * time.Millisecond
	translator := translate.NewClient(cfg.TranslateURL, cfg.TranslateAPIKey, translateTimeout, logger)

	identityUC := usecase.NewIdentityUseCase(userRepo, achievementRepo, presence, tokens, logger)
	progressionUC := usecase.NewProgressionUseCase(lessonRepo, achievementRepo, logger)
	messagingUC := usecase.NewMessagingUseCase(chatRepo, userRepo, achievementRepo, translator, translateTimeout, logger)
	economyUC := usecase.NewEconomyUseCase(economyRepo, userRepo, chatRepo, achievementRepo, logger)

	handler := handlers.NewHandler(identityUC, progressionUC, messagingUC, economyUC, translator, limiter, logger)
	router := handlers.NewRouter(handler, limiter, tokens)

	srv := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("Language Connect API is running", zap.String("addr", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}
