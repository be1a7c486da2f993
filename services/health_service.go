package services

import (
	"context"
	"runtime"
	"time"

	"github.com/Arihaan/ZKShop/database"
	"github.com/Arihaan/ZKShop/plt"
	"github.com/MonkyMars/gecho"
)

var uptimeStart = time.Now()

type serverHealthStatus struct {
	Uptime       float64   `json:"uptime"`        // in seconds
	CurrentTime  time.Time `json:"current_time"`  // server current time
	ServiceAlive bool      `json:"service_alive"` // always true if service is running
	Goroutines   int       `json:"goroutines"`
	RamStats     *RamStats `json:"ram_stats"`
}

type RamStats struct {
	TotalMB     uint64 `json:"total_mb"`
	UsedMB      uint64 `json:"used_mb"`
	FreeMB      uint64 `json:"free_mb"`
	UsedPercent uint64 `json:"used_percent"`
}

type databaseHealthStatus struct {
	Driver         string    `json:"driver"`
	Connected      bool      `json:"connected"`
	LastChecked    time.Time `json:"last_checked"`
	ResponseTimeMs int64     `json:"response_time_ms"`
}

type cacheHealthStatus struct {
	Connected bool           `json:"connected"`
	Stats     map[string]any `json:"stats"`
}

type ledgerHealthStatus struct {
	Reachable      bool   `json:"reachable"`
	TokenID        string `json:"token_id"`
	Decimals       uint8  `json:"decimals"`
	ResponseTimeMs int64  `json:"response_time_ms"`
}

type HealthService struct {
	logger  *gecho.Logger
	db      *database.DB
	cache   *CacheService
	node    plt.Node
	tokenID string
}

// NewHealthService probes the ledger by resolving tokenID, the token the
// shop sells in.
func NewHealthService(logger *gecho.Logger, db *database.DB, cache *CacheService, node plt.Node, tokenID string) *HealthService {
	return &HealthService{
		logger:  logger,
		db:      db,
		cache:   cache,
		node:    node,
		tokenID: tokenID,
	}
}

func getRamStats() *RamStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	totalMB := m.Sys / 1024 / 1024
	usedMB := m.Alloc / 1024 / 1024
	usedPercent := uint64(0)
	if totalMB > 0 {
		usedPercent = (usedMB * 100) / totalMB
	}

	return &RamStats{
		TotalMB:     totalMB,
		UsedMB:      usedMB,
		FreeMB:      totalMB - usedMB,
		UsedPercent: usedPercent,
	}
}

func (hs *HealthService) GetServerHealthStatus() serverHealthStatus {
	return serverHealthStatus{
		Uptime:       time.Since(uptimeStart).Seconds(),
		CurrentTime:  time.Now(),
		ServiceAlive: true,
		Goroutines:   runtime.NumGoroutine(),
		RamStats:     getRamStats(),
	}
}

func (hs *HealthService) GetDatabaseHealthStatus(ctx context.Context) (databaseHealthStatus, error) {
	start := time.Now()
	err := hs.db.Health(ctx)

	status := databaseHealthStatus{
		Driver:         hs.db.Driver,
		Connected:      err == nil,
		LastChecked:    time.Now(),
		ResponseTimeMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		hs.logger.Error("Database health check failed", gecho.Field("error", err))
	}
	return status, err
}

func (hs *HealthService) GetCacheHealthStatus(ctx context.Context) (cacheHealthStatus, error) {
	err := hs.cache.Ping(ctx)
	if err != nil {
		hs.logger.Error("Cache health check failed", gecho.Field("error", err))
	}
	return cacheHealthStatus{Connected: err == nil, Stats: hs.cache.GetConnectionStats()}, err
}

func (hs *HealthService) GetLedgerHealthStatus(ctx context.Context) (ledgerHealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	info, err := hs.node.GetTokenInfo(ctx, hs.tokenID)
	status := ledgerHealthStatus{
		Reachable:      err == nil,
		TokenID:        hs.tokenID,
		ResponseTimeMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		hs.logger.Error("Ledger health check failed", gecho.Field("token_id", hs.tokenID), gecho.Field("error", err))
		return status, err
	}
	status.Decimals = info.State.Decimals
	return status, nil
}
