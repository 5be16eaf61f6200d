package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List tasks
	// (GET /tasks)
	ListTasks(c *gin.Context, params ListTasksParams)
	// Submit a task
	// (POST /tasks)
	CreateTask(c *gin.Context)
	// Get a task
	// (GET /tasks/{id})
	GetTask(c *gin.Context, id openapi_types.UUID)
	// Cancel a queued task
	// (DELETE /tasks/{id})
	CancelTask(c *gin.Context, id openapi_types.UUID)
	// Get pool status
	// (GET /pool)
	GetPool(c *gin.Context)
	// Start the pool
	// (POST /pool/run)
	RunPool(c *gin.Context)
	// Stop the pool
	// (POST /pool/terminate)
	TerminatePool(c *gin.Context)
	// Drop queued tasks
	// (POST /pool/clear)
	ClearPool(c *gin.Context)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandler       func(*gin.Context, error, int)
}

type MiddlewareFunc func(c *gin.Context)

// ListTasks operation middleware
func (siw *ServerInterfaceWrapper) ListTasks(c *gin.Context) {
	var err error

	var params ListTasksParams

	err = runtime.BindQueryParameter("form", true, false, "state", c.Request.URL.Query(), &params.State)
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("invalid format for parameter state: %w", err), http.StatusBadRequest)
		return
	}

	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.ListTasks(c, params)
}

// CreateTask operation middleware
func (siw *ServerInterfaceWrapper) CreateTask(c *gin.Context) {
	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.CreateTask(c)
}

// GetTask operation middleware
func (siw *ServerInterfaceWrapper) GetTask(c *gin.Context) {
	id, ok := siw.bindID(c)
	if !ok {
		return
	}

	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.GetTask(c, id)
}

// CancelTask operation middleware
func (siw *ServerInterfaceWrapper) CancelTask(c *gin.Context) {
	id, ok := siw.bindID(c)
	if !ok {
		return
	}

	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.CancelTask(c, id)
}

// GetPool operation middleware
func (siw *ServerInterfaceWrapper) GetPool(c *gin.Context) {
	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.GetPool(c)
}

// RunPool operation middleware
func (siw *ServerInterfaceWrapper) RunPool(c *gin.Context) {
	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.RunPool(c)
}

// TerminatePool operation middleware
func (siw *ServerInterfaceWrapper) TerminatePool(c *gin.Context) {
	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.TerminatePool(c)
}

// ClearPool operation middleware
func (siw *ServerInterfaceWrapper) ClearPool(c *gin.Context) {
	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.ClearPool(c)
}

func (siw *ServerInterfaceWrapper) bindID(c *gin.Context) (openapi_types.UUID, bool) {
	var id openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("invalid format for parameter id: %w", err), http.StatusBadRequest)
		return id, false
	}
	return id, true
}

// GinServerOptions provides options for the Gin server.
type GinServerOptions struct {
	BaseURL      string
	Middlewares  []MiddlewareFunc
	ErrorHandler func(*gin.Context, error, int)
}

// RegisterHandlers creates http.Handler with routing matching the API.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	RegisterHandlersWithOptions(router, si, GinServerOptions{})
}

// RegisterHandlersWithOptions creates http.Handler with additional options
func RegisterHandlersWithOptions(router gin.IRouter, si ServerInterface, options GinServerOptions) {
	errorHandler := options.ErrorHandler
	if errorHandler == nil {
		errorHandler = func(c *gin.Context, err error, statusCode int) {
			c.JSON(statusCode, gin.H{"error": err.Error()})
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandler:       errorHandler,
	}

	router.GET(options.BaseURL+"/tasks", wrapper.ListTasks)
	router.POST(options.BaseURL+"/tasks", wrapper.CreateTask)
	router.GET(options.BaseURL+"/tasks/:id", wrapper.GetTask)
	router.DELETE(options.BaseURL+"/tasks/:id", wrapper.CancelTask)
	router.GET(options.BaseURL+"/pool", wrapper.GetPool)
	router.POST(options.BaseURL+"/pool/run", wrapper.RunPool)
	router.POST(options.BaseURL+"/pool/terminate", wrapper.TerminatePool)
	router.POST(options.BaseURL+"/pool/clear", wrapper.ClearPool)
}
