package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

type configuration struct {
	APIUrl      string
	Timeout     time.Duration
	PollTimeout time.Duration
}

var cfg configuration

func (c configuration) Validate() error {
	u, err := url.Parse(c.APIUrl)
	if err != nil {
		return fmt.Errorf("failed to parse api url: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api url %q must have a scheme and host", c.APIUrl)
	}
	if c.Timeout <= 0 || c.PollTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

func main() {
	flag.StringVar(&cfg.APIUrl, "api-url", "http://localhost:8000", "Base url of a running task-engine serve instance")
	flag.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.DurationVar(&cfg.PollTimeout, "poll-timeout", 10*time.Second, "How long to wait for a task to reach a state")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("failed to validate configuration: %v", err)
	}

	RegisterFailHandler(Fail)
	if !RunSpecs(&testing.T{}, "E2E Suite") {
		os.Exit(1)
	}
}
