package config

import (
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"

	srvErrors "github.com/kubev2v/task-engine/pkg/errors"
	"github.com/kubev2v/task-engine/pkg/taskmanager"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Pool

type Configuration struct {
	Server    Server `debugmap:"visible"`
	Pool      Pool   `debugmap:"visible"`
	LogFormat string `debugmap:"visible" default:"console"`
	LogLevel  string `debugmap:"visible" default:"debug"`
}

type Server struct {
	ServerMode  string `debugmap:"visible" default:"dev"`
	HTTPPort    int    `debugmap:"visible" default:"8000"`
	TaskHistory int    `debugmap:"visible" default:"1000"`
}

type Pool struct {
	Model          string        `debugmap:"visible" default:"parallel"`
	NumWorkers     int           `debugmap:"visible" default:"4"`
	IdleBackoffMin time.Duration `debugmap:"visible" default:"1ms"`
	IdleBackoffMax time.Duration `debugmap:"visible" default:"50ms"`
}

// Validate checks the values that cannot be fixed up silently.
func (c *Configuration) Validate() error {
	switch c.Server.ServerMode {
	case "dev", "prod":
	default:
		return srvErrors.NewInvalidConfigurationError("server-mode", fmt.Sprintf("%q is not one of dev, prod", c.Server.ServerMode))
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return srvErrors.NewInvalidConfigurationError("http-port", fmt.Sprintf("%d is out of range", c.Server.HTTPPort))
	}
	if c.Server.TaskHistory < 0 {
		return srvErrors.NewInvalidConfigurationError("task-history", "must not be negative")
	}

	if _, err := taskmanager.ParseModel(c.Pool.Model); err != nil {
		return srvErrors.NewInvalidConfigurationError("pool-model", err.Error())
	}
	if c.Pool.IdleBackoffMin <= 0 {
		return srvErrors.NewInvalidConfigurationError("idle-backoff-min", "must be positive")
	}
	if c.Pool.IdleBackoffMax < c.Pool.IdleBackoffMin {
		return srvErrors.NewInvalidConfigurationError("idle-backoff-max", "must not be lower than idle-backoff-min")
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return srvErrors.NewInvalidConfigurationError("log-format", fmt.Sprintf("%q is not one of console, json", c.LogFormat))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return srvErrors.NewInvalidConfigurationError("log-level", err.Error())
	}

	return nil
}

// PoolModel returns the parsed pool model. Call Validate first.
func (c *Configuration) PoolModel() taskmanager.Model {
	m, _ := taskmanager.ParseModel(c.Pool.Model)
	return m
}
