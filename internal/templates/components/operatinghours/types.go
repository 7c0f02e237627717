package operatinghours

type DayHours struct {
	DayOfWeek int64  `json:"dayOfWeek"`
	DayName   string `json:"dayName"`
	OpensAt   string `json:"opensAt,omitempty"`
	ClosesAt  string `json:"closesAt,omitempty"`
	IsClosed  bool   `json:"isClosed"`
	IsToday   bool   `json:"isToday"`
}

type WeekData struct {
	Timezone string     `json:"timezone"`
	Days     []DayHours `json:"days"`
}
