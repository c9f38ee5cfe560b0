package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Josh-codes/AgriDroneX/internal/config"
	"github.com/Josh-codes/AgriDroneX/internal/insight"
	"github.com/Josh-codes/AgriDroneX/internal/repository/mongodb"
	"github.com/Josh-codes/AgriDroneX/internal/scheduler"
	"github.com/Josh-codes/AgriDroneX/internal/server/handlers"
	"github.com/Josh-codes/AgriDroneX/internal/server/router"
	chatsvc "github.com/Josh-codes/AgriDroneX/internal/service/chat"
	farmsvc "github.com/Josh-codes/AgriDroneX/internal/service/farms"
	weathersvc "github.com/Josh-codes/AgriDroneX/internal/service/weather"
	"github.com/Josh-codes/AgriDroneX/pkg/clients/gemini"
	"github.com/Josh-codes/AgriDroneX/pkg/clients/openweather"
	"github.com/Josh-codes/AgriDroneX/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := mongodb.NewRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	farmSvc := farmsvc.NewService(repo, baseLogger.Named("svc.farms"))
	if err := farmSvc.SeedCatalog(context.Background()); err != nil {
		baseLogger.Fatal("failed to seed crop catalog", zap.Error(err))
	}

	generator := insight.NewGenerator(repo, baseLogger.Named("insight"))
	weatherClient := openweather.NewClient(cfg.OpenWeather)
	weatherSvc := weathersvc.NewService(repo, weatherClient, generator, baseLogger.Named("svc.weather"))

	// Initialize AI Client
	var aiClient gemini.Client
	if cfg.AI.GeminiKey != "" {
		aiClient = gemini.NewClient(cfg.AI.GeminiKey)
		baseLogger.Info("gemini advisor client enabled")
	} else {
		baseLogger.Warn("gemini api key missing, chat advisor disabled")
	}
	chatSvc := chatsvc.NewService(aiClient, baseLogger.Named("svc.chat"))

	farmHandler := handlers.NewFarmHandler(farmSvc, baseLogger.Named("handlers.farms"))
	weatherHandler := handlers.NewWeatherHandler(farmSvc, weatherSvc, baseLogger.Named("handlers.weather"))
	chatHandler := handlers.NewChatHandler(chatSvc, baseLogger.Named("handlers.chat"))
	engine := router.New(farmHandler, weatherHandler, chatHandler, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(cfg.Forecast, farmSvc, weatherSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
