package model

import (
	"time"
)

// Category is shared taxonomy; it carries no owner reference.
type Category struct {
	ID        string    `firestore:"-" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
	UpdatedAt time.Time `firestore:"updatedAt,serverTimestamp" json:"updated_at"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=80"`
}
