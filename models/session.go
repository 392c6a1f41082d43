package models

// Actor is the authenticated identity of a request, built once from verified
// access token claims. Guests have an empty UserID and RoleGuest.
type Actor struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Email  string `json:"email"`
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// GuestActor returns the actor used for public bookings.
func GuestActor(email string) Actor {
	if email == "" {
		email = "guest@local"
	}
	return Actor{Role: RoleGuest, Email: email}
}

// Session is returned by register, login and refresh.
type Session struct {
	User         PublicUser `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}
