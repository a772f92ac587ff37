package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nickmwangemi/Flight-Management-API/api"
	"github.com/nickmwangemi/Flight-Management-API/config"
)

// Run starts the HTTP API server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, aircraft *api.AircraftHandler, flights *api.FlightHandler, reports *api.ReportsHandler) error {
	router := NewRouter(aircraft, flights, reports)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter wires the handlers under /api plus a health probe.
func NewRouter(aircraft *api.AircraftHandler, flights *api.FlightHandler, reports *api.ReportsHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	group := router.Group("/api")
	aircraft.Register(group.Group("/aircraft"))
	flights.Register(group.Group("/flights"))
	reports.Register(group.Group("/reports"))

	return router
}
