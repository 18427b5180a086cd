package models

// AppointmentRequest is a service appointment request submitted from the
// detail panel. It is forwarded, never persisted here.
type AppointmentRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	ParishID string `json:"parishId"`
	Service  string `json:"service"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Note     string `json:"note,omitempty"`
}

// AppointmentAck is the acknowledgement returned for a submission.
type AppointmentAck struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}
