package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/bredeby/chunkview/internal/backend"
	"github.com/bredeby/chunkview/internal/cache"
	"github.com/bredeby/chunkview/internal/config"
	"github.com/bredeby/chunkview/internal/corpus"
	"github.com/bredeby/chunkview/internal/handler"
	"github.com/bredeby/chunkview/internal/job"
	"github.com/bredeby/chunkview/internal/middleware"
	"github.com/bredeby/chunkview/internal/repo"
	"github.com/bredeby/chunkview/internal/schedule"
	"github.com/bredeby/chunkview/internal/search"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "chunkview",
		Short: "chunkview search console server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run chunkview server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			db, err := repo.Open(cfg.CacheDBPath)
			if err != nil {
				return fmt.Errorf("open cache db: %w", err)
			}
			if err := repo.ApplyMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, db *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("cache_db", cfg.CacheDBPath),
	)

	cacheTTL := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	cacheRepo := repo.NewCacheRepo(db)
	persistStore := cache.NewPersistStore(cacheRepo, cacheTTL)
	resultStore := cache.NewMemoryStore()

	client := backend.New(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)
	dispatcher := search.NewDispatcher(client, resultStore)
	loader := corpus.NewLoader(client, persistStore, cacheTTL)

	deps := handler.RouterDeps{
		Search:  handler.NewSearchHandler(dispatcher),
		Chunks:  handler.NewChunkHandler(loader),
		Session: handler.NewSessionHandler(loader, cfg.CorpusPageSize, time.Duration(cfg.LoadMoreDelayMs)*time.Millisecond),
		Cache:   handler.NewCacheHandler(dispatcher, loader),
	}

	extraMiddlewares := []gin.HandlerFunc{
		middleware.RequestID(),
		middleware.CORS(cfg.CORSAllowlist),
		gzip.Gzip(gzip.DefaultCompression),
	}
	if cfg.RateLimitMs > 0 {
		extraMiddlewares = append(extraMiddlewares, middleware.RateLimit(time.Duration(cfg.RateLimitMs)*time.Millisecond))
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(extraMiddlewares...),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewCachePurgeJob(cacheRepo, cacheTTL), cfg.PurgeCron); err != nil {
		return fmt.Errorf("schedule cache purge: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
