package config_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/task-engine/internal/config"
	srvErrors "github.com/kubev2v/task-engine/pkg/errors"
	"github.com/kubev2v/task-engine/pkg/taskmanager"
)

var _ = Describe("Configuration", func() {
	Context("defaults", func() {
		It("should fill every section from the default tags", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults()

			Expect(cfg.Server.ServerMode).To(Equal("dev"))
			Expect(cfg.Server.HTTPPort).To(Equal(8000))
			Expect(cfg.Server.TaskHistory).To(Equal(1000))
			Expect(cfg.Pool.Model).To(Equal("parallel"))
			Expect(cfg.Pool.NumWorkers).To(Equal(4))
			Expect(cfg.Pool.IdleBackoffMin).To(Equal(time.Millisecond))
			Expect(cfg.Pool.IdleBackoffMax).To(Equal(50 * time.Millisecond))
			Expect(cfg.LogFormat).To(Equal("console"))
			Expect(cfg.LogLevel).To(Equal("debug"))
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should let options override defaults", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults(
				config.WithPool(*config.NewPoolWithOptionsAndDefaults(
					config.WithModel("cooperative"),
					config.WithNumWorkers(1),
				)),
				config.WithLogLevel("info"),
			)

			Expect(cfg.Pool.Model).To(Equal("cooperative"))
			Expect(cfg.Pool.NumWorkers).To(Equal(1))
			Expect(cfg.Pool.IdleBackoffMax).To(Equal(50 * time.Millisecond))
			Expect(cfg.LogLevel).To(Equal("info"))
			Expect(cfg.PoolModel()).To(Equal(taskmanager.ModelCooperative))
		})

		It("should expose a debug map", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults()
			Expect(cfg.DebugMap()).To(HaveKey("Pool"))
			Expect(cfg.DebugMap()).To(HaveKey("LogLevel"))
		})
	})

	Context("Validate", func() {
		DescribeTable("should reject invalid values",
			func(opt config.ConfigurationOption) {
				cfg := config.NewConfigurationWithOptionsAndDefaults(opt)

				err := cfg.Validate()

				Expect(err).To(HaveOccurred())
				Expect(srvErrors.IsInvalidConfigurationError(err)).To(BeTrue())
			},
			Entry("unknown server mode", config.WithServer(*config.NewServerWithOptionsAndDefaults(config.WithServerMode("staging")))),
			Entry("zero port", config.WithServer(*config.NewServerWithOptionsAndDefaults(config.WithHTTPPort(0)))),
			Entry("port too large", config.WithServer(*config.NewServerWithOptionsAndDefaults(config.WithHTTPPort(70000)))),
			Entry("negative history", config.WithServer(*config.NewServerWithOptionsAndDefaults(config.WithTaskHistory(-1)))),
			Entry("unknown model", config.WithPool(*config.NewPoolWithOptionsAndDefaults(config.WithModel("green-threads")))),
			Entry("zero idle backoff", config.WithPool(*config.NewPoolWithOptionsAndDefaults(config.WithIdleBackoffMin(0)))),
			Entry("inverted idle backoff", config.WithPool(*config.NewPoolWithOptionsAndDefaults(config.WithIdleBackoffMax(time.Microsecond)))),
			Entry("unknown log format", config.WithLogFormat("xml")),
			Entry("unknown log level", config.WithLogLevel("chatty")),
		)
	})
})
