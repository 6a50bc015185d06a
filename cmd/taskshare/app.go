package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskshare/taskshare/internal/config"
	"github.com/taskshare/taskshare/internal/logging"
	"github.com/taskshare/taskshare/internal/paths"
	"github.com/taskshare/taskshare/kv"
	"github.com/taskshare/taskshare/todo"
)

// app bundles what a command needs once configuration is resolved.
type app struct {
	cfg     *config.Config
	logger  logging.Logger
	storage kv.StorageCloser
	store   *todo.Store
}

// openApp loads configuration for the working directory, applies the
// global flag overrides, and opens the task store.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	logger := logging.NewText(os.Stderr, level)

	storageCfg, err := cfg.StorageConfig()
	if err != nil {
		return nil, err
	}

	ctx := commandContext(cmd)
	storage, err := kv.Open(ctx, storageCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", storageCfg.Backend, err)
	}

	store, err := todo.Open(ctx, storage, todo.Options{Logger: logger})
	if err != nil {
		storage.Close()
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, storage: storage, store: store}, nil
}

func loadConfig() (*config.Config, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}

	if rootBackend != "" {
		cfg.Storage.Backend = rootBackend
	}
	if rootData != "" {
		cfg.Storage.Path = rootData
	}
	if rootBaseURL != "" {
		cfg.Share.BaseURL = rootBaseURL
	}
	return cfg, nil
}

// Close releases the storage backend.
func (a *app) Close() error {
	return a.storage.Close()
}

// resolveID expands a unique ID prefix to a full task ID.
func (a *app) resolveID(prefix string) (string, error) {
	return a.store.ResolveID(prefix)
}

// highlighter returns a function emphasizing the unique prefix of task IDs.
func (a *app) highlighter() func(string) string {
	return taskHighlighter(a.store.IDIndex().PrefixLengths(), highlightID)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
