package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/client/productform"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
)

// logNotifier routes form notifications to the structured log.
type logNotifier struct {
	log logger.Logger
}

func (n logNotifier) Success(message string) { n.log.Infow("success", "message", message) }
func (n logNotifier) Error(message string)   { n.log.Errorw("error", "message", message) }

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "productform:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := productform.LoadCLIConfig(productform.NewFlagSet(os.Args[0]), os.Args[1:])
	if err != nil {
		return err
	}

	log, err := logger.NewZapLogger(logger.Config{Level: cfg.LogLevel, Encoding: "console"})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	form := productform.New(
		productform.Config{BaseURL: cfg.BaseURL, Token: cfg.Token, Timeout: cfg.Timeout},
		logNotifier{log: log.Named("notify")},
		func(path string) { log.Infow("navigate", "path", path) },
		log,
	)

	if err := form.Load(ctx); err != nil {
		return err
	}
	if cfg.Category != "" {
		if err := form.SelectCategory(cfg.Category); err != nil {
			return err
		}
	}

	fields := productform.Fields{
		Name:        cfg.Name,
		Description: cfg.Description,
		Price:       cfg.Price,
		Quantity:    cfg.Quantity,
		Shipping:    cfg.Shipping,
	}
	if cfg.PhotoPath != "" {
		data, err := os.ReadFile(cfg.PhotoPath)
		if err != nil {
			return fmt.Errorf("read photo: %w", err)
		}
		fields.Photo = &productform.Photo{FileName: filepath.Base(cfg.PhotoPath), Data: data}
	}
	form.SetFields(fields)

	return form.Submit(ctx)
}
