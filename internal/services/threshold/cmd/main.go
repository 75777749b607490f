package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/LeonardoBeccarini/plantcare/internal/services/threshold"
	"github.com/LeonardoBeccarini/plantcare/pkg/dynamo"
	"github.com/LeonardoBeccarini/plantcare/pkg/logger"
)

func main() {
	cfg := loadConfig()
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := dynamo.NewClient(ctx, dynamo.ClientConfig{
		Region:    cfg.Region,
		Endpoint:  cfg.DynamoEndpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Timeout:   time.Duration(cfg.StoreTimeoutMs) * time.Millisecond,
	})
	if err != nil {
		log.Error("dynamodb client init failed", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	h := threshold.NewHandler(threshold.Config{
		TableName:       cfg.TableName,
		HideStoreErrors: cfg.HideStoreErrors,
		Logger:          log,
		Metrics:         threshold.NewMetrics(reg),
	}, dynamo.NewThresholdStore(client))

	if cfg.Lambda {
		log.Info("threshold: cold start", "table", cfg.TableName)
		lambda.StartWithOptions(h.HandleAPIGateway, lambda.WithContext(ctx))
		return
	}

	// --- local HTTP mode ---
	ready := true
	if cfg.EnsureTable {
		if err := dynamo.EnsureTable(ctx, client, cfg.TableName, time.Duration(cfg.EnsureTableMs)*time.Millisecond); err != nil {
			log.Error("threshold: table bootstrap failed", "table", cfg.TableName, "error", err)
			ready = false
		}
	}

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: threshold.NewHTTPHandler(h, threshold.HTTPOptions{
			AllowedOrigins: cfg.AllowedOrigins,
			Gatherer:       reg,
			Ready:          func() bool { return ready },
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("threshold: HTTP listening", "addr", srv.Addr, "table", cfg.TableName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
	log.Info("threshold: shutdown complete")
}
