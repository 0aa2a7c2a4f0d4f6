package entity

import "time"

// Estados de una cita.
const (
	AppointmentPending   = "pending"
	AppointmentAccepted  = "accepted"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Appointment cita agendada. El motor de ventas solo la lleva a completed.
type Appointment struct {
	ID        string
	ClientID  string
	PetID     string
	Status    string
	UpdatedAt time.Time
}
