package cancel_meeting

// CancelMeetingRequest HTTP request model
type CancelMeetingRequest struct {
	Reason string `json:"reason"`
}
