package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nspcc-dev/eos-pingdemo/pkg/config"
	eosclient "github.com/nspcc-dev/eos-pingdemo/pkg/eos/client"
	"github.com/nspcc-dev/eos-pingdemo/pkg/util/logger"
	"github.com/nspcc-dev/eos-pingdemo/pkg/widget"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func readConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString(configFlag)

	cfg, err := config.New(path)
	if err != nil {
		return nil, err
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if _, err = eosclient.ParseAuthorization(cfg.EOS.Authorization); err != nil {
		return nil, fmt.Errorf("invalid config: eos.authorization: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	timestamp := cfg.Logger.Timestamp ||
		(cfg.Logger.File.Path == "" && term.IsTerminal(int(os.Stdout.Fd())))

	l, err := logger.New(logger.Prm{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		Timestamp:  timestamp,
		File:       cfg.Logger.File.Path,
		MaxSize:    cfg.Logger.File.MaxSize,
		MaxBackups: cfg.Logger.File.MaxBackups,
		MaxAge:     cfg.Logger.File.MaxAge,
		Compress:   cfg.Logger.File.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("could not build logger: %w", err)
	}

	return l, nil
}

func newEOSClient(ctx context.Context, cfg *config.Config, l *zap.Logger) (*eosclient.Client, error) {
	c, err := eosclient.New(ctx, eosclient.Prm{
		Endpoint: cfg.EOS.Endpoint,
		Key:      cfg.EOS.Key,
		Logger:   l,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create EOS client: %w", err)
	}

	return c, nil
}

func pingTarget(cfg *config.Config) widget.Target {
	return widget.Target{
		Contract:      cfg.EOS.Contract,
		Actor:         cfg.EOS.Actor,
		Authorization: cfg.EOS.Authorization,
	}
}
