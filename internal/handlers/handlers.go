package handlers

import (
	v1 "github.com/kubev2v/task-engine/api/v1"
	"github.com/kubev2v/task-engine/internal/services"
)

type Handler struct {
	taskSrv *services.TaskService
}

var _ v1.ServerInterface = (*Handler)(nil)

func New(taskSrv *services.TaskService) *Handler {
	return &Handler{
		taskSrv: taskSrv,
	}
}
