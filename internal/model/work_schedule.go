package model

import (
	"time"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// WorkSchedule describes a professional's recurring availability for one
// weekday. StartAt/EndAt are minute offsets from midnight; Exceptions lists
// concrete dates the rule does not apply.
type WorkSchedule struct {
	ID              string      `firestore:"-" json:"id"`
	ProfessionalRef string      `firestore:"professionalRef" json:"professional_ref"`
	DayOfWeek       DayOfWeek   `firestore:"dayOfWeek" json:"day_of_week"`
	StartAt         int         `firestore:"startAt" json:"start_at"`
	EndAt           int         `firestore:"endAt" json:"end_at"`
	FreeDay         bool        `firestore:"isFreeDay" json:"free_day"`
	Exceptions      []time.Time `firestore:"exceptions,omitempty" json:"exceptions,omitempty"`
	CreatedAt       time.Time   `firestore:"createdAt,serverTimestamp" json:"created_at"`
	UpdatedAt       time.Time   `firestore:"updatedAt,serverTimestamp" json:"updated_at"`
}

type CreateWorkScheduleRequest struct {
	DayOfWeek  DayOfWeek   `json:"day_of_week" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartAt    int         `json:"start_at" validate:"min=0,max=1439"`
	EndAt      int         `json:"end_at" validate:"min=0,max=1440,gtfield=StartAt"`
	FreeDay    bool        `json:"free_day"`
	Exceptions []time.Time `json:"exceptions"`
}

type UpdateWorkScheduleRequest struct {
	DayOfWeek  *DayOfWeek   `json:"day_of_week" validate:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartAt    *int         `json:"start_at" validate:"omitempty,min=0,max=1439"`
	EndAt      *int         `json:"end_at" validate:"omitempty,min=0,max=1440"`
	FreeDay    *bool        `json:"free_day"`
	Exceptions *[]time.Time `json:"exceptions"`
}
