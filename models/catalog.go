package models

import "time"

// RouteOption is a configured hub-to-hub route offered by search.
type RouteOption struct {
	ID         string    `bson:"id" json:"id"`
	FromHub    string    `bson:"fromHub" json:"fromHub"`
	ToHub      string    `bson:"toHub" json:"toHub"`
	FlatRate   float64   `bson:"flatRate" json:"flatRate"`
	Label      string    `bson:"label" json:"label"`
	ETAMinutes int       `bson:"etaMinutes,omitempty" json:"etaMinutes,omitempty"`
	DistanceKm float64   `bson:"distanceKm,omitempty" json:"distanceKm,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CabOption is a cab offered by search. A nil bound means unbounded.
type CabOption struct {
	ID            string     `bson:"id" json:"id"`
	CabType       string     `bson:"cabType" json:"cabType"`
	CarModel      string     `bson:"carModel" json:"carModel"`
	Multiplier    float64    `bson:"multiplier" json:"multiplier"`
	AvailableFrom *time.Time `bson:"availableFrom" json:"availableFrom"`
	AvailableTo   *time.Time `bson:"availableTo" json:"availableTo"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// DayBounds returns the UTC calendar day containing t as [start, end).
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// AvailableOn reports whether the cab's window overlaps the UTC calendar
// day of day. Both bounds are inclusive at day granularity.
func (c CabOption) AvailableOn(day time.Time) bool {
	start, end := DayBounds(day)
	if c.AvailableFrom != nil && !c.AvailableFrom.Before(end) {
		return false
	}
	if c.AvailableTo != nil && c.AvailableTo.Before(start) {
		return false
	}
	return true
}

type RouteInput struct {
	FromHub  string  `json:"fromHub" binding:"required,min=2"`
	ToHub    string  `json:"toHub" binding:"required,min=2"`
	FlatRate float64 `json:"flatRate" binding:"gte=0"`
}

type CabInput struct {
	CabType       string     `json:"cabType" binding:"required,min=2"`
	CarModel      string     `json:"carModel" binding:"required,min=2"`
	Multiplier    float64    `json:"multiplier" binding:"required,gt=0"`
	AvailableFrom *time.Time `json:"availableFrom,omitempty"`
	AvailableTo   *time.Time `json:"availableTo,omitempty"`
}
