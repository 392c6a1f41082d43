package models

import "time"

// Trip types accepted by the booking engine.
const (
	TripOneWay    = "ONE_WAY"
	TripRoundTrip = "ROUND_TRIP"
	TripAirport   = "AIRPORT"
	TripHourly    = "HOURLY"
)

// Booking statuses.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

var TripTypes = []string{TripOneWay, TripRoundTrip, TripAirport, TripHourly}

var BookingStatuses = []string{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

type Address struct {
	Address string `bson:"address" json:"address"`
}

type Schedule struct {
	PickupDate time.Time `bson:"pickupDate" json:"pickupDate"`
	PickupTime string    `bson:"pickupTime" json:"pickupTime"` // free-form, e.g. "10:30"
}

type Contact struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

type Selection struct {
	Route    string `bson:"route" json:"route"`
	CabType  string `bson:"cabType" json:"cabType"`
	CarModel string `bson:"carModel" json:"carModel"`
}

type Fare struct {
	TotalAmount float64 `bson:"totalAmount" json:"totalAmount"`
}

// Booking represents a cab booking record.
type Booking struct {
	ID        string    `bson:"id" json:"id"`             // UUID
	UserID    string    `bson:"userId" json:"userId"`     // empty for guest bookings
	TripType  string    `bson:"tripType" json:"tripType"` // one of TripTypes
	Pickup    Address   `bson:"pickup" json:"pickup"`     // trimmed on create
	Dropoff   Address   `bson:"dropoff" json:"dropoff"`   // trimmed on create
	Schedule  Schedule  `bson:"schedule" json:"schedule"`
	Contact   Contact   `bson:"contact" json:"contact"` // optional for signed-in users
	Selection Selection `bson:"selection" json:"selection"`
	Fare      Fare      `bson:"fare" json:"fare"`       // always >= 0
	Status    string    `bson:"status" json:"status"`   // one of BookingStatuses
	Version   int       `bson:"version" json:"version"` // bumped on every status change
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingInput is the validated payload for creating a booking.
type BookingInput struct {
	TripType string `json:"tripType" binding:"required,oneof=ONE_WAY ROUND_TRIP AIRPORT HOURLY"`
	Pickup   struct {
		Address string `json:"address" binding:"required,min=3"`
	} `json:"pickup" binding:"required"`
	Dropoff struct {
		Address string `json:"address" binding:"required,min=3"`
	} `json:"dropoff" binding:"required"`
	Schedule struct {
		PickupDate string `json:"pickupDate" binding:"required,min=8,pickupdate"`
		PickupTime string `json:"pickupTime" binding:"required,min=4"`
	} `json:"schedule" binding:"required"`
	Contact   *ContactInput   `json:"contact,omitempty"`
	Selection *SelectionInput `json:"selection,omitempty"`
}

// SearchInput is BookingInput without the date format check: an
// unparseable pickup date only disables the cab availability filter.
type SearchInput struct {
	TripType string `json:"tripType" binding:"required,oneof=ONE_WAY ROUND_TRIP AIRPORT HOURLY"`
	Pickup   struct {
		Address string `json:"address" binding:"required,min=3"`
	} `json:"pickup" binding:"required"`
	Dropoff struct {
		Address string `json:"address" binding:"required,min=3"`
	} `json:"dropoff" binding:"required"`
	Schedule struct {
		PickupDate string `json:"pickupDate" binding:"required,min=8"`
		PickupTime string `json:"pickupTime" binding:"required,min=4"`
	} `json:"schedule" binding:"required"`
	Contact   *ContactInput   `json:"contact,omitempty"`
	Selection *SelectionInput `json:"selection,omitempty"`
}

// BookingInput converts the search payload for the booking service.
func (in SearchInput) BookingInput() BookingInput {
	return BookingInput(in)
}

type ContactInput struct {
	Name  string `json:"name,omitempty" binding:"omitempty,min=2"`
	Email string `json:"email,omitempty" binding:"omitempty,email"`
	Phone string `json:"phone,omitempty" binding:"omitempty,phone"`
}

type SelectionInput struct {
	Route      string   `json:"route,omitempty" binding:"omitempty,min=2"`
	CabType    string   `json:"cabType,omitempty" binding:"omitempty,min=2"`
	CarModel   string   `json:"carModel,omitempty" binding:"omitempty,min=2"`
	Multiplier *float64 `json:"multiplier,omitempty"`
	FromHub    string   `json:"fromHub,omitempty" binding:"omitempty,min=2"`
	ToHub      string   `json:"toHub,omitempty" binding:"omitempty,min=2"`
}

// PublicBookingInput is a guest booking; contact details are mandatory.
type PublicBookingInput struct {
	BookingInput
	Contact RequiredContactInput `json:"contact" binding:"required"`
}

type RequiredContactInput struct {
	Name  string `json:"name" binding:"required,min=2"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required,phone"`
}

// StatusUpdateInput is the body of PATCH /bookings/:id/status.
type StatusUpdateInput struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}
