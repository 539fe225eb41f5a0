package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Availability endpoints
	GetAvailableSlotsHandler gin.HandlerFunc

	// Appointment lifecycle endpoints
	CompleteAppointmentHandler gin.HandlerFunc
	CancelAppointmentHandler   gin.HandlerFunc
}
