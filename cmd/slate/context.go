package main

import (
	"log/slog"
	"strings"
	"sync"

	"slate/internal/config"
	"slate/internal/daemonclient"
	"slate/internal/logging"
	"slate/internal/objects"
)

type commandContext struct {
	configFlag *string

	once      sync.Once
	config    *config.Config
	configErr error
	log       *slog.Logger
	client    *daemonclient.Client
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads the configuration once and builds the logger and
// daemon client from it. Every command shares the same client, so the reply
// cache spans the whole invocation.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.once.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}

		log, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.configErr = err
			return
		}

		c.config = cfg
		c.log = log
		c.client = daemonclient.New(daemonclient.Options{
			Host:          cfg.Daemon.Host,
			Port:          cfg.Daemon.Port,
			Timeout:       cfg.DaemonTimeout(),
			BulkTimeout:   cfg.DaemonBulkTimeout(),
			ReadLimit:     int64(cfg.Daemon.ReadLimitKiB) * 1024,
			BulkReadLimit: int64(cfg.Daemon.BulkReadLimitKiB) * 1024,
			Logger:        log,
		})
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() *slog.Logger {
	if _, err := c.ensureConfig(); err != nil || c.log == nil {
		return logging.NewNop()
	}
	return c.log
}

func (c *commandContext) daemon() (*daemonclient.Client, error) {
	if _, err := c.ensureConfig(); err != nil {
		return nil, err
	}
	return c.client, nil
}

func (c *commandContext) pipeline() (*objects.Pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return objects.NewPipeline(objects.Options{
		Client:  c.client,
		Logger:  c.log,
		DataTTL: cfg.DataTTL(),
		PathTTL: cfg.PathTTL(),
	}), nil
}
