package handlers

import (
	"net/http"

	"service-booking-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetLifecycleInfo returns the booking state machine for documentation
func GetLifecycleInfo(c *gin.Context) {
	var transitions []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		transitions = append(transitions, gin.H{
			"from":  t.From,
			"to":    t.To,
			"actor": t.Actor,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   transitions,
		"terminal_states": []string{"Cancelled"},
		"description":     "Booking Lifecycle State Machine (payment confirms, cancel terminates)",
	})
}
