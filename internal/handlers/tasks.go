package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/task-engine/api/v1"
	"github.com/kubev2v/task-engine/internal/models"
	"github.com/kubev2v/task-engine/internal/services"
	srvErrors "github.com/kubev2v/task-engine/pkg/errors"
)

// ListTasks returns the tracked tasks, optionally filtered by state
// (GET /tasks)
func (h *Handler) ListTasks(c *gin.Context, params v1.ListTasksParams) {
	var states []models.TaskState
	if params.State != nil {
		parsed, err := v1.ParseTaskStates(*params.State)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		states = parsed
	}

	c.JSON(http.StatusOK, v1.NewTaskListFromModel(h.taskSrv.List(states...)))
}

// CreateTask submits a new task to the pool. It does not start the pool;
// see RunPool.
// (POST /tasks)
func (h *Handler) CreateTask(c *gin.Context) {
	var req v1.CreateTaskJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	params := services.SubmitParams{
		Kind: models.WorkloadKind(strings.ToLower(string(req.Kind))),
	}
	if req.Name != nil {
		params.Name = *req.Name
	}
	if req.Message != nil {
		params.Message = *req.Message
	}
	if req.Duration != nil {
		d, err := time.ParseDuration(*req.Duration)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duration: " + *req.Duration})
			return
		}
		params.Duration = d
	}

	info, err := h.taskSrv.Submit(params)
	if err != nil {
		if srvErrors.IsInvalidWorkloadError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("task_handler").Errorw("failed to submit task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit task"})
		return
	}

	c.JSON(http.StatusCreated, v1.NewTaskFromModel(info))
}

// GetTask returns a single task
// (GET /tasks/{id})
func (h *Handler) GetTask(c *gin.Context, id openapi_types.UUID) {
	info, err := h.taskSrv.Get(id)
	if err != nil {
		h.taskError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewTaskFromModel(info))
}

// CancelTask removes a queued task. A task that already started is
// returned as-is.
// (DELETE /tasks/{id})
func (h *Handler) CancelTask(c *gin.Context, id openapi_types.UUID) {
	info, err := h.taskSrv.Cancel(id)
	if err != nil {
		h.taskError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewTaskFromModel(info))
}

func (h *Handler) taskError(c *gin.Context, err error) {
	if srvErrors.IsResourceNotFoundError(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	zap.S().Named("task_handler").Errorw("task lookup failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
