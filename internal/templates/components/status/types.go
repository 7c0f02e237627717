package status

// BannerData feeds the business-status banner.
type BannerData struct {
	StatusClass string
	Headline    string
	LocalTime   string
	Detail      string
	Tick        uint64
}

// IndicatorData feeds the floating back-to-top button.
type IndicatorData struct {
	StatusClass string
	Label       string
}

// LoadingIndicator is shown before the first evaluation.
func LoadingIndicator() IndicatorData {
	return IndicatorData{Label: "Loading..."}
}
