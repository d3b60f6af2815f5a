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

	"github.com/joho/godotenv"
	"github.com/kevinaaaquil/locallibrary/config"
	"github.com/kevinaaaquil/locallibrary/handlers"
	"github.com/kevinaaaquil/locallibrary/logger"
	"github.com/kevinaaaquil/locallibrary/service"
	"github.com/kevinaaaquil/locallibrary/store"
	"github.com/kevinaaaquil/locallibrary/store/memstore"
	"github.com/kevinaaaquil/locallibrary/views"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	lg := logger.NewLogger(cfg.ServiceName, cfg.LogLevel)
	defer lg.Sync()

	ctx := context.Background()

	var db handlers.Catalog
	switch cfg.StoreBackend {
	case config.BackendMemory:
		lg.Warn("using in-memory store; data is lost on exit")
		db = memstore.New()
	default:
		mdb, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName, lg)
		if err != nil {
			lg.Fatal("mongodb", zap.Error(err))
		}
		defer func() {
			if err := mdb.Disconnect(context.Background()); err != nil {
				lg.Error("mongodb disconnect", zap.Error(err))
			}
		}()
		if err := mdb.EnsureIndexes(ctx); err != nil {
			lg.Fatal("mongodb indexes", zap.Error(err))
		}
		db = mdb
	}

	var covers handlers.CoverStore
	if cfg.CoversEnabled() {
		s3Service, err := service.NewS3Service(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretKey)
		if err != nil {
			lg.Fatal("s3", zap.Error(err))
		}
		covers = s3Service
	} else {
		lg.Info("AWS_S3_BUCKET not set; book covers disabled")
	}

	renderer, err := views.New()
	if err != nil {
		lg.Fatal("templates", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := handlers.NewRouter(handlers.RouterConfig{
		DB:             db,
		Views:          renderer,
		Covers:         covers,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Log:            lg,
		Registry:       reg,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		lg.Info("server listening", zap.String("addr", server.Addr), zap.String("backend", cfg.StoreBackend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", zap.Error(err))
	}
}
