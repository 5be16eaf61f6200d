/*
Package main provides the end-to-end test runner for the task engine.

The runner is a black-box client: it talks to an already running
`task-engine serve` instance over HTTP and never imports the engine's
internals.

# Package Structure

	test/e2e/
	├── main.go          Entry point: flags, config validation, Ginkgo runner
	├── tests.go         Ginkgo specs (task lifecycle, pool control, metrics)
	├── doc.go           This file
	└── service/
	    └── service.go   TaskEngineSvc: HTTP client for /api/v1, /health, /metrics

# Flags

	-api-url       Base url of the engine (default http://localhost:8000)
	-timeout       HTTP client timeout (default 10s)
	-poll-timeout  How long Eventually waits for a task state (default 10s)

# Running

	task-engine serve --http-port 8000 --pool-model parallel &
	go run ./test/e2e -api-url http://localhost:8000

Specs run Ordered against the shared instance; each spec starts by
clearing the queue. The pool-control specs terminate the pool, so run the
suite against a dedicated instance.
*/
package main
