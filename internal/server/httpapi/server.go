// Package httpapi exposes the account service over HTTP using Echo.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/mediaxis/internal/logging"
	"github.com/dmitrijs2005/mediaxis/internal/server/models"
	"github.com/dmitrijs2005/mediaxis/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// AccountService is the business API the handlers call.
type AccountService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.Account, error)
	Authenticate(ctx context.Context, identifier, password string) (*services.AccountView, error)
	RequestReset(ctx context.Context, identifier string) (*services.ResetResult, error)
	ValidateResetToken(ctx context.Context, token string) (bool, error)
	ConsumeReset(ctx context.Context, token, newPassword string) error
	ListCollections(ctx context.Context) ([]string, error)
}

type Server struct {
	address  string
	echo     *echo.Echo
	accounts AccountService
	logger   logging.Logger
	metrics  *metrics
}

// NewServer builds the Echo instance with recovery, CORS, request logging and
// metrics middleware, and registers all routes.
func NewServer(address string, l logging.Logger, accounts AccountService, allowedOrigins []string) *Server {
	s := &Server{
		address:  address,
		echo:     echo.New(),
		accounts: accounts,
		logger:   l.With("module", "http_server"),
	}

	registry := prometheus.NewRegistry()
	s.metrics = newMetrics(registry)

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = newPageRenderer()

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: allowedOrigins}))
	e.Use(s.metrics.middleware)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info(c.Request().Context(), "request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", c.RealIP(),
			)
			return nil
		},
	}))

	s.registerRoutes()
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.echo, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
