// Package handlers implements the HTTP API layer for the task engine.
//
// Handlers expose the TaskService over a RESTful API. They parse and validate
// requests, delegate to the services layer and map results and errors to
// HTTP responses.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│              v1.ServerInterfaceWrapper (api/v1)                 │
//	│  - Path/query parameter binding                                 │
//	│  - 400 on malformed parameters                                  │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request body validation                                      │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                  services.TaskService                           │
//	└─────────────────────────────────────────────────────────────────┘
//
// The Handler implements v1.ServerInterface and is registered with:
//
//	v1.RegisterHandlers(router, handlers.New(taskSrv))
//
// # API Endpoints
//
// Task Endpoints (tasks.go):
//
//	┌────────┬─────────────┬──────────────────────────────────────────┐
//	│ Method │ Endpoint    │ Description                              │
//	├────────┼─────────────┼──────────────────────────────────────────┤
//	│ GET    │ /tasks      │ List tasks, ?state= filter (repeatable)  │
//	│ POST   │ /tasks      │ Submit a task                            │
//	│ GET    │ /tasks/{id} │ Get a task                               │
//	│ DELETE │ /tasks/{id} │ Cancel a queued task                     │
//	└────────┴─────────────┴──────────────────────────────────────────┘
//
// Pool Endpoints (pool.go):
//
//	┌────────┬─────────────────┬──────────────────────────────────────┐
//	│ Method │ Endpoint        │ Description                          │
//	├────────┼─────────────────┼──────────────────────────────────────┤
//	│ GET    │ /pool           │ Pool status                          │
//	│ POST   │ /pool/run       │ Start executing queued tasks         │
//	│ POST   │ /pool/terminate │ Stop the pool                        │
//	│ POST   │ /pool/clear     │ Drop all queued tasks                │
//	└────────┴─────────────────┴──────────────────────────────────────┘
//
// # Task Handler
//
// POST /tasks - Submits a task:
//
// Request:
//
//	{ "name": "nap", "kind": "sleep", "duration": "2s" }
//	{ "kind": "log", "message": "hello" }
//
// Response: 201 Created
//
//	{
//	    "id": "0b6c1f0e-...",
//	    "name": "nap",
//	    "kind": "sleep",
//	    "state": "queued",
//	    "submittedAt": "2024-01-01T00:00:00Z"
//	}
//
// Errors:
//   - 400 Bad Request: malformed body, bad duration or invalid workload
//
// DELETE /tasks/{id} - Cancels a queued task. The response carries the
// task's state afterwards: "canceled" when it was removed, otherwise the
// state it was already in. Running tasks are never interrupted.
//
// Errors (GET and DELETE):
//   - 400 Bad Request: id is not a UUID
//   - 404 Not Found: unknown task
//
// # Pool Handler
//
// GET /pool, POST /pool/run (202) and POST /pool/terminate return:
//
//	{
//	    "model": "parallel",
//	    "workers": 4,
//	    "runningWorkers": 2,
//	    "queued": 10,
//	    "inFlight": 2,
//	    "scheduling": true
//	}
//
// POST /pool/clear returns { "dropped": 10 }.
package handlers
