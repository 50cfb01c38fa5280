package worker

import (
	"github.com/spec-kit/audit-tracker/internal/service"
)

// StartActivityWorker registers the activity feed recorder.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
