package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	grpchandler "github.com/dtroode/filedrop/internal/api/grpc/handler"
	grpcrouter "github.com/dtroode/filedrop/internal/api/grpc/router"
	grpcserver "github.com/dtroode/filedrop/internal/api/grpc/server"
	httpctx "github.com/dtroode/filedrop/internal/api/http/context"
	httprouter "github.com/dtroode/filedrop/internal/api/http/router"
	httpserver "github.com/dtroode/filedrop/internal/api/http/server"
	"github.com/dtroode/filedrop/internal/api/http/session"
	"github.com/dtroode/filedrop/internal/api/http/view"
	"github.com/dtroode/filedrop/internal/config"
	"github.com/dtroode/filedrop/internal/logger"
	"github.com/dtroode/filedrop/internal/model"
	"github.com/dtroode/filedrop/internal/password"
	"github.com/dtroode/filedrop/internal/repository/postgres"
	"github.com/dtroode/filedrop/internal/repository/redis"
	"github.com/dtroode/filedrop/internal/server"
	"github.com/dtroode/filedrop/internal/service"
	"github.com/dtroode/filedrop/internal/storage/minio"
	"github.com/dtroode/filedrop/internal/storage/s3"
	"github.com/dtroode/filedrop/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const (
	shutdownTimeout     = 10 * time.Second
	healthCheckInterval = 15 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	uploadRepo := postgres.NewUploadRepository(db)

	hasher, err := password.NewBcrypt(cfg.Password.Cost)
	if err != nil {
		logger.Fatal("failed to initialize password hasher", "error", err)
	}
	tokenManager := token.NewJWT(cfg.SecretKey, cfg.Session.TTL)

	revoker, closeRevoker, err := newRevoker(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Fatal("failed to initialize session store", "error", err)
	}
	defer closeRevoker()

	storageClient, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	authService := service.NewAuth(userRepo, hasher, logger)
	uploadService := service.NewUpload(uploadRepo, storageClient, logger)

	sessions := session.NewManager(tokenManager, revoker, session.Options{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.SecureCookie,
	}, logger)

	renderer, err := view.New(logger)
	if err != nil {
		logger.Fatal("failed to load templates", "error", err)
	}

	handler := httprouter.New(
		authService,
		uploadService,
		db,
		sessions,
		renderer,
		httpctx.NewManager(),
		httprouter.Options{
			RequestTimeout: cfg.HTTP.RequestTimeout,
			MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
		},
		logger,
	).Register()

	servers := []model.Server{httpserver.NewHTTPServer(handler, ":"+cfg.HTTP.Port)}

	if cfg.GRPC.Enabled {
		health := grpchandler.NewHealth(db, healthCheckInterval, logger)
		go health.Run(ctx)

		s := grpcrouter.New(health, logger).Register()
		servers = append(servers, grpcserver.NewGRPCServer(s, ":"+cfg.GRPC.Port))
	}

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// newRevoker connects the Redis revocation store. Without an address it
// returns nil and the session manager keeps revocations in memory.
func newRevoker(ctx context.Context, cfg config.Redis, logger *logger.Logger) (model.SessionRevoker, func(), error) {
	if cfg.Addr == "" {
		logger.Warn("REDIS_ADDR is empty, session revocations are kept in memory")
		return nil, func() {}, nil
	}

	client, err := redis.NewClient(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		return nil, nil, err
	}

	return redis.NewRevocationRepository(client), func() { _ = client.Close() }, nil
}

func newStorage(ctx context.Context, cfg config.Storage) (model.Storage, error) {
	switch cfg.Driver {
	case config.StorageDriverS3:
		return s3.New(ctx, s3.Options{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Region:    cfg.Region,
			Bucket:    cfg.Bucket,
			UseSSL:    cfg.UseSSL,
		})
	default:
		return minio.New(ctx, minio.Options{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Region:    cfg.Region,
			Bucket:    cfg.Bucket,
			UseSSL:    cfg.UseSSL,
		})
	}
}
