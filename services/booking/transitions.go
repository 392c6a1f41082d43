package booking

import "safarexpress/models"

// allowedTransitions lists the legal next statuses. Statuses without an
// entry are terminal.
var allowedTransitions = map[string][]string{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCancelled},
	models.StatusCancelled: {},
}

// CanTransition reports whether a booking in status from may move to to.
func CanTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
