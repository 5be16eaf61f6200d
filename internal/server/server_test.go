package server_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kubev2v/task-engine/internal/config"
	"github.com/kubev2v/task-engine/internal/server"
)

var _ = Describe("Server", func() {
	var (
		cfg *config.Configuration
		reg *prometheus.Registry
	)

	get := func(h http.Handler, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	BeforeEach(func() {
		cfg = config.NewConfigurationWithOptionsAndDefaults(config.WithServer(config.Server{ServerMode: "prod", HTTPPort: 8000}))
		reg = prometheus.NewRegistry()
	})

	It("should require a configuration", func() {
		_, err := server.NewServer(nil, reg, func(*gin.RouterGroup) {})
		Expect(err).To(HaveOccurred())
	})

	It("should serve the health probe", func() {
		srv, err := server.NewServer(cfg, reg, func(*gin.RouterGroup) {})
		Expect(err).NotTo(HaveOccurred())

		w := get(srv.Handler(), "/health")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"ok"`))
	})

	// Given a registry with a counter
	// When /metrics is scraped
	// Then the counter is exposed in the text format
	It("should expose the registry on /metrics", func() {
		// Arrange
		counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "probe"})
		reg.MustRegister(counter)
		counter.Inc()
		srv, err := server.NewServer(cfg, reg, func(*gin.RouterGroup) {})
		Expect(err).NotTo(HaveOccurred())

		// Act
		w := get(srv.Handler(), "/metrics")

		// Assert
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("probe_total 1"))
	})

	It("should mount handlers under /api/v1", func() {
		srv, err := server.NewServer(cfg, reg, func(router *gin.RouterGroup) {
			router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(get(srv.Handler(), "/api/v1/ping").Body.String()).To(Equal("pong"))
		Expect(get(srv.Handler(), "/ping").Code).To(Equal(http.StatusNotFound))
	})

	It("should recover from handler panics", func() {
		srv, err := server.NewServer(cfg, reg, func(router *gin.RouterGroup) {
			router.GET("/boom", func(*gin.Context) { panic("boom") })
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(get(srv.Handler(), "/api/v1/boom").Code).To(Equal(http.StatusInternalServerError))
	})
})
