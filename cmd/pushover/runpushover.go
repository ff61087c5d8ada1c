package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tinywideclouds/go-pushover/internal/storage/receipts"
	"github.com/tinywideclouds/go-pushover/pkg/dispatch"
	"github.com/tinywideclouds/go-pushover/pushover"
	"github.com/tinywideclouds/go-pushover/pushover/config"
)

//go:embed local.yaml
var configFile []byte

func main() {
	var logLevel slog.Level
	switch os.Getenv("LOG_LEVEL") {
	case "debug", "DEBUG":
		logLevel = slog.LevelDebug
	case "info", "INFO":
		logLevel = slog.LevelInfo
	case "warn", "WARN":
		logLevel = slog.LevelWarn
	case "error", "ERROR":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})).With("service", "go-pushover")
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Config Loading ---
	var yamlCfg config.YamlConfig
	if err := yaml.Unmarshal(configFile, &yamlCfg); err != nil {
		logger.Error("Failed to unmarshal embedded yaml config", "err", err)
		os.Exit(1)
	}
	baseCfg, _ := config.NewConfigFromYaml(&yamlCfg, logger)
	cfg, err := config.UpdateConfigWithEnvOverrides(baseCfg, logger)
	if err != nil {
		logger.Error("Config failed", "err", err)
		os.Exit(1)
	}

	// Message body and optional title come from argv; recipients from config.
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: pushover <message> [title]")
		os.Exit(2)
	}
	body := os.Args[1]
	var title string
	if len(os.Args) > 2 {
		title = os.Args[2]
	}
	if len(cfg.Recipients) == 0 {
		logger.Error("No recipients configured (set recipients in YAML or PUSHOVER_RECIPIENTS)")
		os.Exit(1)
	}

	// --- Receipt Log (optional) ---
	var receiptStore dispatch.ReceiptStore
	if cfg.Redis.Enabled {
		logger.Info("Initializing Redis receipt log...", "addr", cfg.Redis.Addr)
		redisClient, err := receipts.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Error("Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		receiptStore = receipts.NewStore(redisClient, 24*time.Hour)
	}

	// --- Dispatcher ---
	dispatcher := pushover.NewDispatcher(pushover.Config{
		Token:    cfg.Token,
		Endpoint: cfg.Endpoint,
	}, logger)

	// A single recipient keeps the device qualifier; a batch drops it.
	failed := 0
	if len(cfg.Recipients) == 1 {
		recipient := cfg.Recipients[0]
		requestID, err := dispatcher.Send(ctx, dispatch.Message{
			Recipient: recipient,
			Body:      body,
			Title:     title,
			Device:    cfg.Device,
		})
		if err != nil {
			logger.Error("Delivery failed", "recipient", recipient, "err", err)
			failed++
		} else {
			logger.Info("Delivered", "recipient", recipient, "request_id", requestID)
			recordReceipt(ctx, receiptStore, recipient, requestID, logger)
		}
	} else {
		results := dispatcher.Broadcast(ctx, cfg.Recipients, body, title)
		for i, res := range results {
			recipient := cfg.Recipients[i]
			if res.Err != nil {
				logger.Error("Delivery failed", "recipient", recipient, "err", res.Err)
				failed++
				continue
			}
			logger.Info("Delivered", "recipient", recipient, "request_id", res.Value)
			recordReceipt(ctx, receiptStore, recipient, res.Value, logger)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func recordReceipt(ctx context.Context, store dispatch.ReceiptStore, recipient, requestID string, logger *slog.Logger) {
	if store == nil {
		return
	}
	if err := store.Record(ctx, recipient, requestID); err != nil {
		logger.Warn("Failed to record receipt", "recipient", recipient, "err", err)
	}
}
