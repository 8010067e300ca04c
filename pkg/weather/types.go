package weather

import "time"

// Daily is the forecast summary of one day.
type Daily struct {
	Date     string  `json:"date"`
	MaxTempC float64 `json:"tmax_c"`
	MinTempC float64 `json:"tmin_c"`
	PrecipMM float64 `json:"precip_mm"`
	CloudPct float64 `json:"clouds_pct"`
	Code     int     `json:"code"`
}

// Hourly is the cloud cover at one hour of the day.
type Hourly struct {
	Time time.Time `json:"time"`
	// Hour is the local wall clock time in fractional hours.
	Hour  float64 `json:"hour"`
	Cloud float64 `json:"cloud"`
}

// Report collects the weather for a place and day. Either part may be missing
// when its upstream request failed.
type Report struct {
	Daily  *Daily   `json:"daily,omitempty"`
	Hourly []Hourly `json:"hourly,omitempty"`
}
