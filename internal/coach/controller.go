package coach

import (
	"errors"
	"net/http"
	"strconv"

	"coachseat/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

//  RESERVATIONS

func (c *Controller) Reserve(ctx *gin.Context) {
	var req ReserveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data",
			ReservationResponse{Outcome: OutcomeInvalidRequest, Seats: []int{}}, err.Error())
		return
	}

	result, err := c.service.Reserve(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to reserve seats", nil, err.Error())
		return
	}

	body := ReservationResponse{
		Outcome: result.Outcome,
		Count:   result.Count,
		Seats:   []int{},
	}
	if r := result.Reservation; r != nil {
		body.ReservationID = r.ID
		body.Seats = r.Seats
		body.Scattered = r.Scattered
		body.CreatedAt = &r.CreatedAt
	}

	switch result.Outcome {
	case OutcomeSuccess:
		response.Success(ctx, http.StatusCreated, result.Message, body)
	case OutcomeInvalidRequest:
		response.Error(ctx, http.StatusBadRequest, result.Message, body, result.Outcome)
	default:
		response.Error(ctx, http.StatusConflict, result.Message, body, result.Outcome)
	}
}

func (c *Controller) ListReservations(ctx *gin.Context) {
	reservations, err := c.service.ListReservations(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list reservations", nil, err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Reservations retrieved successfully", reservations)
}

func (c *Controller) LatestReservation(ctx *gin.Context) {
	reservation, err := c.service.LatestReservation(ctx.Request.Context())
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrNoReservation) {
			statusCode = http.StatusNotFound
		}
		response.Error(ctx, statusCode, "Failed to get latest reservation", nil, err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Latest reservation retrieved successfully", reservation)
}

//  SEATS & LAYOUT

func (c *Controller) SearchSeats(ctx *gin.Context) {
	count, err := strconv.Atoi(ctx.Query("count"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Count is required", nil, "missing or non-numeric count query parameter")
		return
	}

	result, err := c.service.FindSeats(ctx.Request.Context(), count)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to search seats", nil, err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Seat search completed", result)
}

func (c *Controller) GetLayout(ctx *gin.Context) {
	layout, err := c.service.GetLayout(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to get layout", nil, err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Coach layout retrieved successfully", layout)
}

func (c *Controller) GetAvailability(ctx *gin.Context) {
	availability, err := c.service.GetAvailability(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to check availability", nil, err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Seat availability checked successfully", availability)
}
