package handlers

import (
	"net/http"

	"trimly/services/appointment"
	"trimly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LifecycleHandler exposes the completion and cancellation staff actions.
type LifecycleHandler struct {
	Svc    appointment.LifecycleService
	Logger *zap.Logger
}

func NewLifecycleHandler(svc appointment.LifecycleService, logger *zap.Logger) *LifecycleHandler {
	return &LifecycleHandler{Svc: svc, Logger: logger}
}

// CompleteAppointmentHandler drives the completion workflow for one appointment.
func (h *LifecycleHandler) CompleteAppointmentHandler(c *gin.Context) {
	appointmentID := c.Param("id")

	report, err := h.Svc.Complete(c.Request.Context(), appointmentID)
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}

	h.logFailedSteps(report)
	c.JSON(http.StatusOK, gin.H{"message": report.Message})
}

// CancelAppointmentHandler drives the cancellation workflow for one appointment.
func (h *LifecycleHandler) CancelAppointmentHandler(c *gin.Context) {
	appointmentID := c.Param("id")

	report, err := h.Svc.Cancel(c.Request.Context(), appointmentID)
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}

	h.logFailedSteps(report)
	c.JSON(http.StatusOK, gin.H{
		"message":  report.Message,
		"notified": report.Notified,
	})
}

// respondWorkflowError maps the workflow taxonomy onto the HTTP contract:
// not-found and transition/integrity violations are client errors, datastore
// failures on the primary transition are server errors.
func (h *LifecycleHandler) respondWorkflowError(c *gin.Context, err error) {
	switch {
	case appointment.IsNotFound(err):
		utils.JSONError(c, http.StatusNotFound, "appointment not found", err.Error())
	case appointment.IsInvalidTransition(err):
		utils.JSONError(c, http.StatusBadRequest, "invalid transition", err.Error())
	case appointment.IsIntegrityError(err):
		utils.JSONError(c, http.StatusBadRequest, "appointment cannot be billed", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "workflow failed", err.Error())
	}
}

func (h *LifecycleHandler) logFailedSteps(report *appointment.Report) {
	for _, step := range report.FailedSteps() {
		h.Logger.Warn("workflow side effect failed",
			zap.String("appointment_id", report.AppointmentID),
			zap.String("step", step.Name),
			zap.Error(step.Err))
	}
}
