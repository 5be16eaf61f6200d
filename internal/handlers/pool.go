package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/task-engine/api/v1"
)

// GetPool returns the pool status
// (GET /pool)
func (h *Handler) GetPool(c *gin.Context) {
	h.poolStatus(c, http.StatusOK)
}

// RunPool starts the pool. Calling it on a running pool is harmless.
// Parallel workers exit once the queue drains, so clients of a parallel pool
// call this after submitting; a cooperative scheduler keeps running.
// (POST /pool/run)
func (h *Handler) RunPool(c *gin.Context) {
	h.taskSrv.Run()
	h.poolStatus(c, http.StatusAccepted)
}

// TerminatePool stops the pool
// (POST /pool/terminate)
func (h *Handler) TerminatePool(c *gin.Context) {
	h.taskSrv.Terminate()
	h.poolStatus(c, http.StatusOK)
}

// ClearPool drops every queued task
// (POST /pool/clear)
func (h *Handler) ClearPool(c *gin.Context) {
	n := h.taskSrv.Clear()
	c.JSON(http.StatusOK, v1.ClearResponse{Dropped: n})
}

func (h *Handler) poolStatus(c *gin.Context, code int) {
	var status v1.PoolStatus
	status.FromModel(h.taskSrv.Status())
	c.JSON(code, status)
}
