package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"kinlead/internal/platform/config"
	"kinlead/internal/platform/logger"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	logger     *slog.Logger
	configErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.configErr = err
			return
		}
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logger.New(cfg.Logging.Level, cfg.Logging.Format)
		slog.SetDefault(c.logger)
	})
	return c.config, c.configErr
}

func (c *commandContext) wantJSON() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// withApp opens the stores and clients for one command and closes them after
// fn returns.
func (c *commandContext) withApp(ctx context.Context, fn func(*app) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	a, err := openApp(ctx, cfg, c.logger)
	if err != nil {
		return err
	}
	defer a.Close(context.WithoutCancel(ctx))
	return fn(a)
}
