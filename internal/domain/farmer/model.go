package farmer

import (
	"context"
	"time"
)

// Profile stores grower details linked to an account.
type Profile struct {
	ID              string    `json:"id"`
	UserID          int64     `json:"userId"`
	District        string    `json:"district"`
	ExperienceYears int       `json:"experienceYears,omitempty"`
	FarmSizeAcres   float64   `json:"farmSizeAcres,omitempty"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UpsertRequest captures the profile payload.
type UpsertRequest struct {
	District        string  `json:"district"`
	ExperienceYears int     `json:"experienceYears"`
	FarmSizeAcres   float64 `json:"farmSizeAcres"`
	PhoneNumber     string  `json:"phoneNumber"`
}

// Repository abstracts profile persistence. One profile per user.
type Repository interface {
	Upsert(ctx context.Context, profile Profile) (Profile, error)
	GetByUser(ctx context.Context, userID int64) (Profile, bool, error)
}
