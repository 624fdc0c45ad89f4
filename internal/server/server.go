// Package server exposes chart rendering, the settings store and the theme
// preference over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nexusriot/anacreon/internal/chart"
	"github.com/nexusriot/anacreon/internal/probe"
	"github.com/nexusriot/anacreon/internal/settings"
	"github.com/nexusriot/anacreon/internal/theme"
)

type Deps struct {
	Stores  settings.Stores
	Theme   *theme.Provider
	Sampler probe.Sampler
	Memo    *chart.Memo
	Logger  *zap.Logger
	// RenderRate is chart renders per second; zero disables the limit.
	RenderRate float64
	Release    bool
}

type Server struct {
	deps   Deps
	log    *zap.Logger
	router *gin.Engine
}

func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Release {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{deps: d, log: d.Logger, router: gin.New()}
	s.router.Use(gin.Recovery(), correlationID(), requestLogger(s.log))
	s.router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:    []string{"Content-Type", CorrelationIDHeader},
		ExposeHeaders:   []string{CorrelationIDHeader},
		MaxAge:          12 * time.Hour,
	}))
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	r := s.router
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	var lim *rate.Limiter
	if s.deps.RenderRate > 0 {
		lim = rate.NewLimiter(rate.Limit(s.deps.RenderRate), int(s.deps.RenderRate)+1)
	}
	charts := r.Group("/charts", renderLimit(lim))
	charts.GET("/sparkline.svg", s.sparkline)
	charts.POST("/bar.svg", s.barChart)
	charts.POST("/donut.svg", s.donut)
	charts.GET("/dashboard/revenue.svg", s.dashboardRevenue)
	charts.GET("/dashboard/orders.svg", s.dashboardOrders)
	charts.GET("/dashboard/kpi/:index", s.dashboardKPI)
	charts.GET("/dashboard/summary", s.dashboardSummary)

	st := r.Group("/settings")
	registerCRUD(st.Group("/businesses"), s.deps.Stores.Businesses)
	registerCRUD(st.Group("/categories"), s.deps.Stores.Categories)
	st.GET("/users", func(c *gin.Context) { c.JSON(http.StatusOK, settings.Users()) })
	st.GET("/integrations", func(c *gin.Context) { c.JSON(http.StatusOK, settings.Integrations()) })

	r.GET("/theme", s.getTheme)
	r.PUT("/theme", s.putTheme)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func abortJSON(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
