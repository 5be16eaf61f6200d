package errors_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/task-engine/pkg/errors"
)

var _ = Describe("errors", func() {
	DescribeTable("predicates",
		func(err error, check func(error) bool, want bool) {
			Expect(check(err)).To(Equal(want))
		},
		Entry("task panic", srvErrors.NewTaskPanicError("boom"), srvErrors.IsTaskPanicError, true),
		Entry("wrapped task panic", fmt.Errorf("worker 2: %w", srvErrors.NewTaskPanicError("boom")), srvErrors.IsTaskPanicError, true),
		Entry("unknown model", srvErrors.NewUnknownModelError("green-threads"), srvErrors.IsUnknownModelError, true),
		Entry("invalid configuration", srvErrors.NewInvalidConfigurationError("server.http-port", "must be positive"), srvErrors.IsInvalidConfigurationError, true),
		Entry("invalid workload", srvErrors.NewInvalidWorkloadError("shell", "unsupported kind"), srvErrors.IsInvalidWorkloadError, true),
		Entry("wrapped task not found", fmt.Errorf("cancel: %w", srvErrors.NewTaskNotFoundError("42")), srvErrors.IsResourceNotFoundError, true),
		Entry("mismatched type", srvErrors.NewUnknownModelError("x"), srvErrors.IsResourceNotFoundError, false),
		Entry("plain error", errors.New("boom"), srvErrors.IsTaskPanicError, false),
	)

	It("should format messages", func() {
		Expect(srvErrors.NewTaskPanicError("boom").Error()).To(Equal("task panicked: boom"))
		Expect(srvErrors.NewTaskNotFoundError("abc").Error()).To(Equal(`task "abc" not found`))
		Expect(srvErrors.NewUnknownModelError("x").Error()).To(ContainSubstring(`"x"`))
		Expect(srvErrors.NewInvalidConfigurationError("log-level", "unknown level").Error()).
			To(Equal("invalid configuration for log-level: unknown level"))
	})
})
