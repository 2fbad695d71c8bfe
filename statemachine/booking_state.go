package statemachine

import (
	"errors"

	"service-booking-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.BookingStatus
	To    models.BookingStatus
	Actor string // "customer", "provider", "admin", "system"
}

// validTransitions is the authoritative state machine definition.
// Payment confirms a Pending booking; cancellation is terminal from any
// non-terminal state. Confirmed bookings are otherwise final.
var validTransitions = []Transition{
	// Payment flips a pending booking to confirmed
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: "system"},
	// Owning customer, assigned provider, or admin can cancel
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "provider"},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "admin"},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: "provider"},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: "admin"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.BookingStatus
	To    models.BookingStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// PairedPaymentState returns the PaymentStatus that must be written together
// with the given booking status. Cancellation keeps the current flag so a
// refunded cancellation still shows what was paid.
func PairedPaymentState(to models.BookingStatus, current models.PaymentState) models.PaymentState {
	if to == models.StatusConfirmed {
		return models.PaymentPaid
	}
	return current
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.BookingStatus) []models.BookingStatus {
	var nexts []models.BookingStatus
	seen := map[models.BookingStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.BookingStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.BookingStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
