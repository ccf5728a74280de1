package dto

// CalendarRequest identifies the tutor and window for a calendar
// resolution. Exactly one of TutorID or Email must be set; the handler
// clears Email when TutorID is present so TutorID always wins.
type CalendarRequest struct {
	TutorID string `json:"tutor_id" validate:"required_without=Email"`
	Email   string `json:"email" validate:"omitempty,email"`
	Days    int    `json:"days"`
}

// DaySlots carries the resolved bookable slot starts for one calendar
// date in the tutor's governing timezone.
type DaySlots struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// CalendarResponse is the public calendar payload. Slot times are HH:MM
// in the governing timezone; viewers convert for display themselves.
type CalendarResponse struct {
	Timezone string     `json:"timezone"`
	Days     []DaySlots `json:"days"`
}

// ExportFile is a rendered calendar download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
