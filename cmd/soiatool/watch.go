// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/solidcoredata/soia/example"
	"github.com/solidcoredata/soia/internal/config"
	"github.com/solidcoredata/soia/internal/start"
)

func newWatchCommand() *cobra.Command {
	var configDir string
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Poll a directory for .bin Scene payloads and log decode results until SIGINT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			cfg, err := config.Load(config.Options{Dir: configDir, EnvPrefix: "SOIATOOL"})
			if err != nil {
				return err
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			return start.Start(context.Background(), 5*time.Second, func(ctx context.Context) error {
				return start.RunAll(ctx,
					cfg.Run,
					func(ctx context.Context) error { return watchDir(ctx, dir, cfg.PollInterval(), logger) },
				)
			})
		},
	}
	cmd.Flags().StringVar(&configDir, "config", ".", "configuration directory")
	return cmd
}

// watchDir polls dir every interval, decoding any ".bin" file it hasn't
// seen before as a Scene payload and logging the outcome.
func watchDir(ctx context.Context, dir string, interval time.Duration, logger *zap.Logger) error {
	seen := map[string]bool{}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	scan := func() error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".bin" {
				continue
			}
			if seen[entry.Name()] {
				continue
			}
			seen[entry.Name()] = true
			path := filepath.Join(dir, entry.Name())
			buf, err := os.ReadFile(path)
			if err != nil {
				logger.Warn("soiatool watch: read failed", zap.String("file", path), zap.Error(err))
				continue
			}
			scene, err := example.SceneSerializer.FromBytes(buf, true)
			if err != nil {
				logger.Warn("soiatool watch: decode failed", zap.String("file", path), zap.Error(err))
				continue
			}
			logger.Info("soiatool watch: decoded payload",
				zap.String("file", path),
				zap.Int("points", len(scene.Points())),
			)
		}
		return nil
	}

	if err := scan(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := scan(); err != nil {
				return err
			}
		}
	}
}
