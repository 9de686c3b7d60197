package domain

import "github.com/matjarhub/booking-service/pkg/types"

// Slot candidate meeting start time, annotated available/unavailable.
// Derived per request, never persisted.
type Slot struct {
	Time      types.TimeString
	Available bool
}
