// internal/api/operatinghours/handlers.go
package operatinghours

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ink102/studio-status/internal/api/apiutil"
	bizstatus "github.com/ink102/studio-status/internal/status"
	operatinghourstempl "github.com/ink102/studio-status/internal/templates/components/operatinghours"
)

var (
	adapter     *bizstatus.Adapter
	adapterOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(a *bizstatus.Adapter) {
	if a == nil {
		return
	}
	adapterOnce.Do(func() {
		adapter = a
	})
}

func loadAdapter() *bizstatus.Adapter {
	return adapter
}

// GET /api/v1/hours
func HandleWeek(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireMethod(w, r, http.MethodGet) {
		return
	}

	a := loadAdapter()
	if a == nil {
		logger.Error().Msg("Operating hours handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	today := a.Current().EvaluatedAt.Weekday()
	week := apiutil.WeekData(a.Schedule(), today, a.Location())

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, week); err != nil {
			logger.Error().Err(err).Msg("Failed to write operating hours response")
		}
		return
	}

	component := operatinghourstempl.WeekList(week)
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render operating hours", "Failed to render operating hours")
}
