package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/workspace"
)

// loadConfig layers the environment over the config file over the defaults.
func loadConfig() (*config.Config, error) {
	var file config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		file = *loaded
	}

	env, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	merged := env.MergeWithDefaults(file)
	merged = merged.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// openWorkspace opens the configured store and loads the workspace from it.
// Closing the workspace closes the store.
func openWorkspace(ctx context.Context, cfg *config.Config) (*workspace.Workspace, error) {
	store, err := db.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	ws, err := workspace.Open(ctx, workspace.Options{
		Store:           store,
		DefaultTemplate: types.TemplateID(cfg.DefaultTemplate),
		BaseURL:         cfg.BaseURL,
		LLMConfig:       cfg.LLMConfig(),
		APIKey:          cfg.APIKey,
		PDF:             export.NewChromeRenderer(cfg.ChromePath, logger.Named("chrome")),
		Logger:          logger.Named("workspace"),
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to open workspace: %w", err)
	}
	return ws, nil
}

// withWorkspace opens the workspace for one command and closes it afterwards.
func withWorkspace(ctx context.Context, fn func(ws *workspace.Workspace) error) error {
	ws, err := openWorkspace(ctx, appConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := ws.Close(); err != nil {
			logger.Warn("failed to close workspace", zap.Error(err))
		}
	}()
	return fn(ws)
}
