// internal/api/status/handlers.go
package status

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/ink102/studio-status/internal/api/apiutil"
	"github.com/ink102/studio-status/internal/api/htmx"
	"github.com/ink102/studio-status/internal/hours"
	"github.com/ink102/studio-status/internal/models"
	bizstatus "github.com/ink102/studio-status/internal/status"
	operatinghourstempl "github.com/ink102/studio-status/internal/templates/components/operatinghours"
	statustempl "github.com/ink102/studio-status/internal/templates/components/status"
	"github.com/ink102/studio-status/internal/templates/layouts"
)

const (
	atQueryKey       = "at"
	defaultPageTitle = "Business Hours"
	refreshedEvent   = "business-status-refreshed"
)

var errNotInitialized = errors.New("status handlers not initialized")

// Options are the collaborators shared by every status handler. Display must
// be one of Adapter's surfaces.
type Options struct {
	Adapter *bizstatus.Adapter
	Display *bizstatus.Display
	Palette *models.StatusPalette
	Title   string
}

var (
	handlerOpts *Options
	optsOnce    sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(opts Options) {
	if opts.Adapter == nil || opts.Display == nil {
		return
	}
	optsOnce.Do(func() {
		if strings.TrimSpace(opts.Title) == "" {
			opts.Title = defaultPageTitle
		}
		handlerOpts = &opts
	})
}

func loadOptions() *Options {
	return handlerOpts
}

type statusResponse struct {
	Status      hours.Classification `json:"status"`
	Label       string               `json:"label"`
	Headline    string               `json:"headline"`
	Detail      string               `json:"detail"`
	LocalTime   string               `json:"localTime"`
	Timezone    string               `json:"timezone"`
	Tick        uint64               `json:"tick"`
	EvaluatedAt time.Time            `json:"evaluatedAt"`
	NextRefresh *time.Time           `json:"nextRefresh,omitempty"`
	Preview     bool                 `json:"preview,omitempty"`
}

func newStatusResponse(snap bizstatus.Snapshot, loc *time.Location) statusResponse {
	resp := statusResponse{
		Status:      snap.Result.Classification,
		Label:       snap.Result.Classification.Label(),
		Headline:    snap.Result.Headline,
		Detail:      snap.Result.Detail,
		LocalTime:   snap.LocalTime,
		Timezone:    loc.String(),
		Tick:        snap.Tick,
		EvaluatedAt: snap.EvaluatedAt,
	}
	if !snap.NextRefresh.IsZero() {
		next := snap.NextRefresh
		resp.NextRefresh = &next
	}
	return resp
}

// GET /
func HandlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !apiutil.RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	opts, ok := requireOptions(w, r)
	if !ok {
		return
	}

	snap := opts.Adapter.Current()
	view := currentView(opts)
	week := apiutil.WeekData(opts.Adapter.Schedule(), snap.EvaluatedAt.Weekday(), opts.Adapter.Location())

	body := templ.Join(
		statustempl.Banner(view.Banner),
		operatinghourstempl.WeekList(week),
		statustempl.Indicator(view.Indicator, false),
		statustempl.VisibilityRefresh(),
	)
	page := layouts.Base(opts.Title, opts.Palette, body)
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render status page", "Failed to render page")
}

// GET /api/v1/status
func HandleStatus(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireMethod(w, r, http.MethodGet) {
		return
	}
	opts, ok := requireOptions(w, r)
	if !ok {
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get(atQueryKey))
	if raw == "" {
		writeStatusJSON(w, r, newStatusResponse(opts.Adapter.Current(), opts.Adapter.Location()))
		return
	}

	resp, err := previewStatus(opts.Adapter, raw)
	if err != nil {
		log.Ctx(r.Context()).Debug().Err(err).Str("at", raw).Msg("Rejected status preview")
		apiutil.WriteError(w, err)
		return
	}
	writeStatusJSON(w, r, resp)
}

// GET /api/v1/status/banner
func HandleBanner(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireMethod(w, r, http.MethodGet) {
		return
	}
	opts, ok := requireOptions(w, r)
	if !ok {
		return
	}

	view := currentView(opts)
	component := statustempl.BannerWithIndicator(view.Banner, view.Indicator)
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render status banner", "Failed to render status banner")
}

// GET /api/v1/status/indicator
func HandleIndicator(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireMethod(w, r, http.MethodGet) {
		return
	}
	opts, ok := requireOptions(w, r)
	if !ok {
		return
	}

	view := currentView(opts)
	component := statustempl.Indicator(view.Indicator, false)
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render status indicator", "Failed to render status indicator")
}

// POST /api/v1/status/refresh
func HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireMethod(w, r, http.MethodPost) {
		return
	}
	opts, ok := requireOptions(w, r)
	if !ok {
		return
	}

	snap := opts.Adapter.Refresh()
	log.Ctx(r.Context()).Debug().
		Uint64("tick", snap.Tick).
		Str("status", snap.Result.Classification.String()).
		Bool("htmx", htmx.IsRequest(r)).
		Msg("Business status refreshed on request")

	if apiutil.IsJSONRequest(r) {
		writeStatusJSON(w, r, newStatusResponse(snap, opts.Adapter.Location()))
		return
	}

	view := opts.Display.View()
	component := statustempl.BannerWithIndicator(view.Banner, view.Indicator)
	headers := map[string]string{"HX-Trigger": refreshedEvent}
	apiutil.RenderHTMLComponent(r.Context(), w, component, headers, "Failed to render refreshed banner", "Failed to render status banner")
}

func requireOptions(w http.ResponseWriter, r *http.Request) (*Options, bool) {
	opts := loadOptions()
	if opts == nil {
		log.Ctx(r.Context()).Error().Err(errNotInitialized).Msg("Status handlers called before InitHandlers")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return opts, true
}

// currentView returns the display's views, forcing a first evaluation when
// the adapter has not ticked yet.
func currentView(opts *Options) bizstatus.DisplayView {
	view := opts.Display.View()
	if !view.Ready {
		opts.Adapter.Current()
		view = opts.Display.View()
	}
	return view
}

func previewStatus(adapter *bizstatus.Adapter, raw string) (statusResponse, error) {
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return statusResponse{}, apiutil.HandlerError{
			Status:  http.StatusBadRequest,
			Message: "at must be an RFC 3339 timestamp",
			Err:     err,
		}
	}

	in, result := adapter.EvaluateAt(at)
	return statusResponse{
		Status:      result.Classification,
		Label:       result.Classification.Label(),
		Headline:    result.Headline,
		Detail:      result.Detail,
		LocalTime:   hours.FormatClock(in.Time),
		Timezone:    adapter.Location().String(),
		EvaluatedAt: in.Time,
		Preview:     true,
	}, nil
}

func writeStatusJSON(w http.ResponseWriter, r *http.Request, resp statusResponse) {
	w.Header().Set("Cache-Control", "no-store")
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write status response")
	}
}
