package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"oroserver/hubspot"
	"oroserver/models"
	"oroserver/services/scheduling"
	"oroserver/utils"
)

// SchedulingHandler exposes the availability and booking API routes.
type SchedulingHandler struct {
	Service scheduling.SchedulingService
	Logger  *zap.Logger
}

func NewSchedulingHandler(svc scheduling.SchedulingService, logger *zap.Logger) *SchedulingHandler {
	return &SchedulingHandler{Service: svc, Logger: logger}
}

// MonthAvailabilityHandler resolves day-bucketed availability for one month.
func (h *SchedulingHandler) MonthAvailabilityHandler(c *gin.Context) {
	month := c.Query("month")
	timezone := c.DefaultQuery("timezone", "UTC")

	info, err := h.Service.MonthInfo(c.Request.Context(), month, timezone)
	if err != nil {
		var ve *scheduling.ValidationError
		if errors.As(err, &ve) {
			utils.JSONError(c, http.StatusBadRequest, ve.Message, "")
			return
		}
		var ue *hubspot.UpstreamError
		if errors.As(err, &ue) {
			utils.JSONError(c, http.StatusBadGateway, "Upstream scheduling provider unavailable",
				fmt.Sprintf("status %d: %s", ue.StatusCode, ue.Body))
			return
		}
		h.Logger.Error("MonthAvailabilityHandler: unexpected error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	c.JSON(http.StatusOK, info)
}

// CreateBookingHandler validates a booking submission and forwards it
// upstream, passing the confirmation body through opaquely.
func (h *SchedulingHandler) CreateBookingHandler(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.JSONError(c, http.StatusRequestEntityTooLarge, "Request body too large", "")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	confirmation, err := h.Service.Book(c.Request.Context(), input)
	if err != nil {
		var ve *scheduling.ValidationError
		if errors.As(err, &ve) {
			utils.JSONError(c, http.StatusBadRequest, ve.Message, "")
			return
		}
		var ue *hubspot.UpstreamError
		if errors.As(err, &ue) {
			// Forward the upstream status so the UI can tell "slot taken,
			// pick another" apart from a generic failure.
			status := ue.StatusCode
			if status == 0 {
				status = http.StatusBadGateway
			}
			utils.JSONError(c, status, "Booking failed upstream", ue.Body)
			return
		}
		h.Logger.Error("CreateBookingHandler: unexpected error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", confirmation)
}
