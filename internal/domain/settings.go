package domain

import "time"

// Settings is the singleton map-view configuration. Exactly one row exists;
// it is created with defaults on schema init and only ever updated.
type Settings struct {
	CenterLongitude float64
	CenterLatitude  float64
	Zoom            int
	UpdatedAt       time.Time
}

// Default map view: whole-world extent.
const (
	DefaultCenterLongitude = 0.0
	DefaultCenterLatitude  = 0.0
	DefaultZoom            = 2
)
