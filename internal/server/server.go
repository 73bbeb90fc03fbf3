package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cogworks/invoice-service/internal/config"
	"github.com/cogworks/invoice-service/internal/handlers"
	"github.com/cogworks/invoice-service/internal/metrics"
)

// Server wires the gin router to the invoice handlers.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	httpSrv  *http.Server
}

// New creates a server with all routes and templates registered.
func New(h *handlers.Handlers, cfg *config.Config) *Server {
	router := gin.Default()
	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/static", "./static")

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
	}

	s.setupRoutes()

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/live", s.handlers.Live)
	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))

	s.router.GET("/", s.handlers.ShowForm)
	s.router.POST("/", s.handlers.CreateInvoice)
	s.router.POST("/invoices", s.handlers.CreateInvoice)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/invoices/:invoice_no", s.handlers.GetInvoice)
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
