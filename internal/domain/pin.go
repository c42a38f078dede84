package domain

import "time"

// Pin represents a point of interest dropped on the map by a visitor.
// Pins are immutable once created; CreatedAt carries second precision in UTC.
type Pin struct {
	ID          int64
	Title       string
	Description string
	Longitude   float64
	Latitude    float64
	CreatedAt   time.Time
}

// Visit records an anonymous visitor check-in.
type Visit struct {
	ID          int64
	VisitorHash string
	Name        string
	Age         int
	Date        string
	DeviceHint  string
	CreatedAt   time.Time
}
