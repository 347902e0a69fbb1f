package model

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is jointly owned by the booking client and the professional:
// either party may mutate it.
type Appointment struct {
	ID              string            `firestore:"-" json:"id"`
	ClientRef       string            `firestore:"clientRef" json:"client_ref"`
	ProfessionalRef string            `firestore:"professionalRef" json:"professional_ref"`
	ServiceRef      string            `firestore:"serviceRef" json:"service_ref"`
	StartAt         time.Time         `firestore:"startAt" json:"start_at"`
	Status          AppointmentStatus `firestore:"appointmentStatus" json:"status"`
	Notes           string            `firestore:"notes,omitempty" json:"notes,omitempty"`
	RatingGiven     bool              `firestore:"ratingGiven" json:"rating_given"`
	CreatedAt       time.Time         `firestore:"createdAt,serverTimestamp" json:"created_at"`
	UpdatedAt       time.Time         `firestore:"updatedAt,serverTimestamp" json:"updated_at"`
}

// AuthorizedActors returns the uids allowed to mutate this appointment.
func (a *Appointment) AuthorizedActors() []string {
	return []string{a.ClientRef, a.ProfessionalRef}
}

// CanMutate reports whether uid is a member of the authorized-actor set.
func (a *Appointment) CanMutate(uid string) bool {
	for _, actor := range a.AuthorizedActors() {
		if actor != "" && actor == uid {
			return true
		}
	}
	return false
}

type CreateAppointmentRequest struct {
	ProfessionalRef string    `json:"professional_ref" validate:"required"`
	ServiceRef      string    `json:"service_ref" validate:"required"`
	StartAt         time.Time `json:"start_at" validate:"required"`
	Notes           string    `json:"notes" validate:"max=1000"`
}

type UpdateAppointmentRequest struct {
	StartAt *time.Time         `json:"start_at"`
	Status  *AppointmentStatus `json:"status" validate:"omitempty,oneof=scheduled confirmed completed cancelled"`
	Notes   *string            `json:"notes" validate:"omitempty,max=1000"`
}
