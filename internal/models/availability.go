package models

import "time"

// WeeklyAvailabilityRule is a tutor's recurring weekly availability row.
// DayOfWeek follows the 0=Sunday .. 6=Saturday convention used by the
// tutor-facing profile editor.
type WeeklyAvailabilityRule struct {
	ID        string    `db:"id" json:"id"`
	TutorID   string    `db:"tutor_id" json:"tutor_id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Timezone  string    `db:"timezone" json:"timezone"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AvailabilityException overrides availability on a single calendar
// date. IsActive true opens the time range (additive), false closes it
// (subtractive). Timezone is optional; when absent the tutor's weekly
// timezone governs.
type AvailabilityException struct {
	ID        string    `db:"id" json:"id"`
	TutorID   string    `db:"tutor_id" json:"tutor_id"`
	Date      string    `db:"date" json:"date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Timezone  *string   `db:"timezone" json:"timezone,omitempty"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Profile is the minimal projection of a marketplace profile needed to
// resolve an email into a tutor identifier.
type Profile struct {
	ID       string `db:"id" json:"id"`
	Email    string `db:"email" json:"email"`
	FullName string `db:"full_name" json:"full_name"`
}
