package model

import (
	"time"
)

// Review is owned by the client who wrote it.
type Review struct {
	ID              string    `firestore:"-" json:"id"`
	AppointmentRef  string    `firestore:"appointmentRef" json:"appointment_ref"`
	ProfessionalRef string    `firestore:"professionalRef" json:"professional_ref"`
	ClientRef       string    `firestore:"clientRef" json:"client_ref"`
	Rating          int       `firestore:"rating" json:"rating"`
	Comment         string    `firestore:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt       time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
	UpdatedAt       time.Time `firestore:"updatedAt,serverTimestamp" json:"updated_at"`
}

type CreateReviewRequest struct {
	AppointmentRef  string `json:"appointment_ref" validate:"required"`
	ProfessionalRef string `json:"professional_ref" validate:"required"`
	Rating          int    `json:"rating" validate:"required,min=1,max=5"`
	Comment         string `json:"comment" validate:"max=1000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=1000"`
}
