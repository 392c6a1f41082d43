package handlers

import (
	"net/http"

	"safarexpress/middleware"
	"safarexpress/models"
	"safarexpress/services/booking"
	"safarexpress/utils"

	"github.com/gin-gonic/gin"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// respondCreated answers with 201, or with the stored status on a replay.
func respondCreated(c *gin.Context, res *booking.CreateResult) {
	status := http.StatusCreated
	if res.Replayed {
		status = res.ReplayStatus
	}
	utils.Success(c, status, res)
}

func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input models.BookingInput
	if !bindJSON(c, &input) {
		return
	}
	actor, _ := middleware.ActorFrom(c)
	res, err := h.Service.CreateBooking(c.Request.Context(), input, actor, utils.RequestID(c), c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	respondCreated(c, res)
}

func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	bookings, err := h.Service.ListBookings(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	actor, _ := middleware.ActorFrom(c)
	b, err := h.Service.GetBookingByID(c.Request.Context(), id, actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *BookingHandler) GetBookingEventsHandler(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	actor, _ := middleware.ActorFrom(c)
	evts, err := h.Service.GetBookingEvents(c.Request.Context(), id, actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"events": evts})
}

func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var input models.StatusUpdateInput
	if !bindJSON(c, &input) {
		return
	}
	actor, _ := middleware.ActorFrom(c)
	b, err := h.Service.UpdateBookingStatus(c.Request.Context(), id, input.Status, actor, utils.RequestID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"booking": b})
}
