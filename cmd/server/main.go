package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpchandler "github.com/Xausdorf/pixcode/internal/delivery/grpc"
	httpdelivery "github.com/Xausdorf/pixcode/internal/delivery/http"
	"github.com/Xausdorf/pixcode/internal/domain/repository"
	"github.com/Xausdorf/pixcode/internal/infrastructure/config"
	"github.com/Xausdorf/pixcode/internal/infrastructure/postgres"
	"github.com/Xausdorf/pixcode/internal/infrastructure/qrgenerator"
	"github.com/Xausdorf/pixcode/internal/usecase/findcharge"
	"github.com/Xausdorf/pixcode/internal/usecase/generateqr"
	"github.com/Xausdorf/pixcode/internal/usecase/issuecharge"
)

const (
	readHeaderTimeout     = 5 * time.Second
	gracefulShutdownDelay = 5 * time.Second

	dbMaxConns        = 10
	dbMinConns        = 2
	dbMaxConnLifetime = 30 * time.Minute
	dbMaxConnIdleTime = 5 * time.Minute
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var charges repository.ChargeRepository
	if cfg.DatabaseURL != "" {
		pool, err := initDB(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("database init failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		charges = postgres.NewChargeRepo(pool)
		logger.Info("charge ledger enabled")
	} else {
		logger.Warn("DATABASE_URL not set, charge ledger disabled")
	}

	qrGen := qrgenerator.NewGenerator(cfg.QRSize)

	issueOpts := []issuecharge.Option{}
	if charges != nil {
		issueOpts = append(issueOpts, issuecharge.WithLedger(charges))
	}
	if cfg.StrictKeys {
		issueOpts = append(issueOpts, issuecharge.WithStrictValidation())
	}

	issueUC := issuecharge.NewUseCase(qrGen, issueOpts...)
	generateQRUC := generateqr.NewUseCase(qrGen, cfg.StrictKeys)
	findUC := findcharge.NewUseCase(charges)

	router := httpdelivery.NewRouter(httpdelivery.NewHandler(issueUC, generateQRUC, findUC, logger))
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	grpcSrv := grpc.NewServer(grpc.UnaryInterceptor(grpchandler.RecoveryInterceptor(logger)))
	grpchandler.RegisterBRCodeServer(grpcSrv, grpchandler.NewHandler(issueUC))
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	healthSrv.SetServingStatus(grpchandler.ServiceName, healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcSrv)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Error("listen failed", "error", err)
		return
	}

	go func() {
		logger.Info("gRPC server starting", "addr", cfg.GRPCAddr)
		if serveErr := grpcSrv.Serve(lis); serveErr != nil {
			logger.Error("grpc serve failed", "error", serveErr)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if serveErr := httpSrv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", serveErr)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	healthSrv.Shutdown()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
	defer shutdownCancel()
	_ = httpSrv.Shutdown(shutdownCtx)
	grpcSrv.GracefulStop()
}

func initDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	cfg.MaxConns = dbMaxConns
	cfg.MinConns = dbMinConns
	cfg.MaxConnLifetime = dbMaxConnLifetime
	cfg.MaxConnIdleTime = dbMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
