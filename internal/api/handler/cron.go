package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/buckii/bi-forecast-sub000/internal/scheduler"
	"github.com/buckii/bi-forecast-sub000/pkg/apiErrors"
)

// CronJobServices bundles the schedulers reachable through the manual cron
// endpoints
type CronJobServices struct {
	ArchiveSyncService *scheduler.ArchiveSyncService
	CacheSweepService  *scheduler.CacheSweepService
}

// RunCronJob triggers one scheduled job immediately
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		var started bool
		switch jobType {
		case "archive-sync":
			started = services.ArchiveSyncService.RunNow(r.Context())
		case "cache-sweep":
			started = services.CacheSweepService.RunNow(r.Context())
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "unknown cron job type", map[string]string{
				"type": jobType,
			})
			return
		}

		apiErrors.WriteSuccess(w, map[string]any{
			"type":    jobType,
			"started": started,
		})
	}
}

// GetCronStatus reports the archive job's recent activity
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteSuccess(w, map[string]any{
			"archiveSync": services.ArchiveSyncService.Status(),
		})
	}
}
