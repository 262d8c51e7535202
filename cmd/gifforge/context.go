package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"gifforge/internal/assemble"
	"gifforge/internal/config"
	"gifforge/internal/encoder"
	"gifforge/internal/export"
	"gifforge/internal/frames"
	"gifforge/internal/logging"
	"gifforge/internal/normalize"
)

// commandContext lazily resolves config, the logger, and the workspace store
// so commands that never touch them pay nothing.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{filepath.Join(cfg.Paths.LogDir, "gifforge.log")},
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// withStore opens the workspace store for the duration of fn. The workspace
// lock is released when fn returns.
func (c *commandContext) withStore(fn func(*frames.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := frames.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func (c *commandContext) newNormalizer() (*normalize.Normalizer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return normalize.New(cfg.Normalize.MaxDimension), nil
}

// newAssembler builds an assembler; workers <= 0 uses the configured hint.
func (c *commandContext) newAssembler(workers int) (*assemble.Assembler, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = cfg.Encoder.Workers
	}
	return assemble.New(encoder.NewGIF(), workers, logger), nil
}

func (c *commandContext) newExporter() (*export.Exporter, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return export.New(cfg, logger), nil
}
