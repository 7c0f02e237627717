package status

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ink102/studio-status/internal/hours"
	statustempl "github.com/ink102/studio-status/internal/templates/components/status"
)

// BannerData builds the banner view for snap.
func BannerData(snap Snapshot) statustempl.BannerData {
	return statustempl.BannerData{
		StatusClass: snap.Result.Classification.String(),
		Headline:    snap.Result.Headline,
		LocalTime:   snap.LocalTime,
		Detail:      snap.Result.Detail,
		Tick:        snap.Tick,
	}
}

// IndicatorData builds the back-to-top view for snap.
func IndicatorData(snap Snapshot) statustempl.IndicatorData {
	return statustempl.IndicatorData{
		StatusClass: snap.Result.Classification.String(),
		Label:       snap.Result.Classification.Label(),
	}
}

// DisplayView is the banner and indicator built from one snapshot.
type DisplayView struct {
	Banner    statustempl.BannerData
	Indicator statustempl.IndicatorData
	Ready     bool
}

// Display keeps the last rendered banner and indicator together so a reader
// never pairs one tick's banner with another tick's indicator.
type Display struct {
	mu   sync.RWMutex
	view DisplayView
}

func NewDisplay() *Display {
	return &Display{view: DisplayView{Indicator: statustempl.LoadingIndicator()}}
}

func (d *Display) Render(snap Snapshot) error {
	view := DisplayView{
		Banner:    BannerData(snap),
		Indicator: IndicatorData(snap),
		Ready:     true,
	}
	d.mu.Lock()
	d.view = view
	d.mu.Unlock()
	return nil
}

// View returns the last views; Ready is false before the first render.
func (d *Display) View() DisplayView {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.view
}

// TransitionLog writes a log line whenever the classification changes.
type TransitionLog struct {
	logger zerolog.Logger
	last   hours.Classification
	seen   bool
}

func NewTransitionLog() *TransitionLog {
	return &TransitionLog{
		logger: log.With().Str("component", "business_status_transitions").Logger(),
	}
}

// Render is only ever called under the adapter's lock, so no locking here.
func (t *TransitionLog) Render(snap Snapshot) error {
	c := snap.Result.Classification
	if t.seen && c == t.last {
		return nil
	}

	event := t.logger.Info().
		Uint64("tick", snap.Tick).
		Str("status", c.String()).
		Str("detail", snap.Result.Detail).
		Time("evaluated_at", snap.EvaluatedAt)
	if t.seen {
		event.Str("previous", t.last.String()).Msg("Business status changed")
	} else {
		event.Msg("Business status initialized")
	}

	t.last = c
	t.seen = true
	return nil
}
