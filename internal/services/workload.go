package services

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/task-engine/internal/models"
	srvErrors "github.com/kubev2v/task-engine/pkg/errors"
)

const maxSleep = 10 * time.Minute

type SubmitParams struct {
	Name     string
	Kind     models.WorkloadKind
	Duration time.Duration
	Message  string
}

// buildWorkload turns submit parameters into the function run by Execute.
func buildWorkload(p SubmitParams) (func(), error) {
	switch p.Kind {
	case models.WorkloadSleep:
		if p.Duration <= 0 || p.Duration > maxSleep {
			return nil, srvErrors.NewInvalidWorkloadError(string(p.Kind), "duration must be in (0, 10m]")
		}
		d := p.Duration
		return func() { time.Sleep(d) }, nil
	case models.WorkloadLog:
		msg := strings.TrimSpace(p.Message)
		if msg == "" {
			return nil, srvErrors.NewInvalidWorkloadError(string(p.Kind), "message is required")
		}
		name := p.Name
		return func() {
			zap.S().Named("task_workload").Infow(msg, "task", name)
		}, nil
	default:
		return nil, srvErrors.NewInvalidWorkloadError(string(p.Kind), "unsupported kind")
	}
}
