package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// PoolStats is the connection pool snapshot reported by the database
// health endpoint. Postgres is this service's only persistent
// dependency, so the pool state doubles as the readiness signal.
type PoolStats struct {
	TotalConns    int32  `json:"total_conns"`
	IdleConns     int32  `json:"idle_conns"`
	AcquiredConns int32  `json:"acquired_conns"`
	MaxConns      int32  `json:"max_conns"`
	AcquireCount  int64  `json:"acquire_count"`
	AcquireWait   string `json:"acquire_wait"`
	Healthy       bool   `json:"healthy"`
}

// HealthResponse is the payload served at /health/db.
type HealthResponse struct {
	Status string     `json:"status"`
	Error  string     `json:"error,omitempty"`
	Pool   *PoolStats `json:"pool"`
}

// GetPoolStats snapshots the pool counters.
func GetPoolStats(pool *pgxpool.Pool) *PoolStats {
	stat := pool.Stat()
	return &PoolStats{
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
		MaxConns:      stat.MaxConns(),
		AcquireCount:  stat.AcquireCount(),
		AcquireWait:   stat.AcquireDuration().String(),
		Healthy:       stat.TotalConns() > 0,
	}
}

// healthResult builds the response for one ping outcome.
func healthResult(pingErr error, stats *PoolStats) (int, HealthResponse) {
	if pingErr != nil {
		stats.Healthy = false
		return http.StatusServiceUnavailable, HealthResponse{
			Status: "unhealthy",
			Error:  pingErr.Error(),
			Pool:   stats,
		}
	}
	return http.StatusOK, HealthResponse{Status: "healthy", Pool: stats}
}

// HealthHandler serves the database health check. The ping is bounded so
// a hung database turns into a fast 503 instead of a stalled probe.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		code, resp := healthResult(pool.Ping(ctx), GetPoolStats(pool))
		return c.JSON(code, resp)
	}
}
