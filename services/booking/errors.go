package booking

import "safarexpress/utils"

var (
	ErrNotFound          = utils.NotFound("booking_not_found", "Booking not found.")
	ErrForbidden         = utils.Forbidden("booking_forbidden", "Cannot access this booking.")
	ErrInvalidTransition = utils.Conflict("invalid_status_transition", "Invalid status transition.")
	// ErrConcurrentUpdate means another request changed the booking between
	// read and write.
	ErrConcurrentUpdate = utils.Conflict("booking_conflict", "Booking was modified by another request. Retry.")
	ErrInvalidDate      = utils.ValidationError([]utils.FieldError{{Path: "schedule.pickupDate", Message: "must be a valid date"}})
)

func invalidTransition(from, to string) error {
	return ErrInvalidTransition.WithDetail("Invalid status transition from " + from + " to " + to + ".")
}
