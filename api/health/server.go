package health

import (
	"net/http"

	"github.com/Arihaan/ZKShop/handling"
	"github.com/MonkyMars/gecho"
)

// GetLiveness answers {"ok": true} while the process serves requests.
func (hrm *HealthRoutesManager) GetLiveness(w http.ResponseWriter, r *http.Request) {
	handling.Respond(w, r, http.StatusOK, map[string]bool{"ok": true})
}

func (hrm *HealthRoutesManager) GetServerHealth(w http.ResponseWriter, r *http.Request) {
	healthStatus := hrm.healthService.GetServerHealthStatus()
	gecho.Success(w,
		gecho.WithData(healthStatus),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	dbHealthStatus, err := hrm.healthService.GetDatabaseHealthStatus(r.Context())
	if err != nil {
		gecho.InternalServerError(w,
			gecho.WithMessage("Database health check failed"),
			gecho.WithData(dbHealthStatus),
			gecho.Send(),
		)
		return
	}
	gecho.Success(w,
		gecho.WithData(dbHealthStatus),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetCacheHealth(w http.ResponseWriter, r *http.Request) {
	cacheStatus, err := hrm.healthService.GetCacheHealthStatus(r.Context())
	if err != nil {
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("Cache health check failed"),
			gecho.WithData(cacheStatus),
			gecho.Send(),
		)
		return
	}
	gecho.Success(w,
		gecho.WithData(cacheStatus),
		gecho.Send(),
	)
}

// GetLedgerHealth reports whether the node answers for the shop's token.
func (hrm *HealthRoutesManager) GetLedgerHealth(w http.ResponseWriter, r *http.Request) {
	status, err := hrm.healthService.GetLedgerHealthStatus(r.Context())
	if err != nil {
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("Ledger node unreachable"),
			gecho.WithData(status),
			gecho.Send(),
		)
		return
	}
	gecho.Success(w,
		gecho.WithData(status),
		gecho.Send(),
	)
}
