package handlers

import (
	"net/http"

	"safarexpress/models"
	"safarexpress/services/booking"
	"safarexpress/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const noCabsMessage = "No cabs found for this route"

// PublicHandler serves unauthenticated search and guest bookings.
type PublicHandler struct {
	Service booking.BookingService
}

func NewPublicHandler(svc booking.BookingService) *PublicHandler {
	return &PublicHandler{Service: svc}
}

// SearchHandler never fails once the input is valid: lookup errors are
// logged and reported as an empty result.
func (h *PublicHandler) SearchHandler(c *gin.Context) {
	var search models.SearchInput
	if !bindJSON(c, &search) {
		return
	}
	input := search.BookingInput()
	res, err := h.Service.SearchOptions(c.Request.Context(), input)
	if err != nil {
		utils.GetLogger().Error("Search failed", zap.String("requestId", utils.RequestID(c)), zap.Error(err))
		res = &booking.SearchResult{
			Pickup:   input.Pickup.Address,
			Dropoff:  input.Dropoff.Address,
			TripType: input.TripType,
			Routes:   []booking.RouteResult{},
			Cabs:     []booking.CabResult{},
		}
	}
	if len(res.Routes) == 0 || len(res.Cabs) == 0 {
		res.Message = noCabsMessage
	}
	utils.Success(c, http.StatusOK, res)
}

func (h *PublicHandler) CreateGuestBookingHandler(c *gin.Context) {
	var input models.PublicBookingInput
	if !bindJSON(c, &input) {
		return
	}
	contact := input.Contact
	input.BookingInput.Contact = &models.ContactInput{Name: contact.Name, Email: contact.Email, Phone: contact.Phone}

	res, err := h.Service.CreateBooking(c.Request.Context(), input.BookingInput, models.GuestActor(contact.Email),
		utils.RequestID(c), c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respondCreated(c, res)
}

// LegacyCreateBookingHandler keeps the pre-v1 POST /api/bookings contract:
// anonymous, the booking itself as data, always 201.
func (h *PublicHandler) LegacyCreateBookingHandler(c *gin.Context) {
	var input models.BookingInput
	if !bindJSON(c, &input) {
		return
	}
	res, err := h.Service.CreateBooking(c.Request.Context(), input, models.GuestActor(""),
		utils.RequestID(c), c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessWithMeta(c, http.StatusCreated, res.Booking, gin.H{"compatibility": "legacy_route"})
}
