package model

import (
	"time"
)

type UserType string

const (
	UserTypeClient       UserType = "client"
	UserTypeProfessional UserType = "professional"
)

// User is the profile document behind an authenticated identity. The
// document id equals the identity provider uid.
type User struct {
	ID          string    `firestore:"-" json:"id"`
	Name        string    `firestore:"name" json:"name"`
	Email       string    `firestore:"email" json:"email"`
	Type        UserType  `firestore:"type" json:"type"`
	Phone       string    `firestore:"phone,omitempty" json:"phone,omitempty"`
	ImageURL    string    `firestore:"imageUrl,omitempty" json:"image_url,omitempty"`
	Rating      float64   `firestore:"rating" json:"rating"`
	CategoryRef string    `firestore:"categoryRef,omitempty" json:"category_ref,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
	UpdatedAt   time.Time `firestore:"updatedAt,serverTimestamp" json:"updated_at"`
}

type SignUpRequest struct {
	Name     string   `json:"name" validate:"required,min=2,max=120"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8,max=128"`
	Type     UserType `json:"type" validate:"required,oneof=client professional"`
	Phone    string   `json:"phone" validate:"omitempty,max=32"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdateUserRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=2,max=120"`
	Type        *UserType `json:"type" validate:"omitempty,oneof=client professional"`
	Phone       *string   `json:"phone" validate:"omitempty,max=32"`
	ImageURL    *string   `json:"image_url" validate:"omitempty,url"`
	CategoryRef *string   `json:"category_ref"`
}
