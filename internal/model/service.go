package model

import (
	"time"
)

// Service is an offering published by a professional. ProfessionalRef is the
// owning user's document id and is stamped by the use-case layer, never by
// the caller.
type Service struct {
	ID              string    `firestore:"-" json:"id"`
	ProfessionalRef string    `firestore:"professionalRef" json:"professional_ref"`
	CategoryRef     string    `firestore:"categoryRef,omitempty" json:"category_ref,omitempty"`
	Name            string    `firestore:"name" json:"name"`
	Description     string    `firestore:"description,omitempty" json:"description,omitempty"`
	Duration        int       `firestore:"duration" json:"duration"` // in minutes
	Price           float64   `firestore:"price" json:"price"`
	Active          bool      `firestore:"active" json:"active"`
	CreatedAt       time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
	UpdatedAt       time.Time `firestore:"updatedAt,serverTimestamp" json:"updated_at"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	Description string  `json:"description" validate:"max=1000"`
	Duration    int     `json:"duration" validate:"required,min=5,max=480"`
	Price       float64 `json:"price" validate:"required,min=0"`
	CategoryRef string  `json:"category_ref"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Duration    *int     `json:"duration" validate:"omitempty,min=5,max=480"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
	Active      *bool    `json:"active"`
}
