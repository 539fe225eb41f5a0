package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"trimly/config"
	professionalRepo "trimly/database/repository/professional"
	"trimly/services/schedule"
	"trimly/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves the bookable-slot computation.
type AvailabilityHandler struct {
	Svc schedule.AvailabilityService
}

func NewAvailabilityHandler(svc schedule.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc}
}

// GetAvailableSlotsHandler returns the ordered list of bookable start times
// for a professional on a date. The sweep step comes from configuration:
// single-service requests use the fine step, combo requests the coarse one.
func (h *AvailabilityHandler) GetAvailableSlotsHandler(c *gin.Context) {
	professionalID := c.Param("professionalId")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "date is required", "expected date=YYYY-MM-DD")
		return
	}

	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil || duration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid duration", "expected a positive number of minutes")
		return
	}

	step := config.AppConfig.SlotStepSingle
	if c.Query("combo") == "true" {
		step = config.AppConfig.SlotStepCombo
	}

	slots, err := h.Svc.GetAvailableSlots(c.Request.Context(), professionalID, date, duration, step)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "professional not found", professionalID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", err.Error())
		return
	}
	if slots == nil {
		slots = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"professional_id": professionalID,
		"date":            date,
		"slots":           slots,
	})
}
