package domain

import "time"

// AvailabilitySlot is one recurring weekly open interval for a doctor.
// StartTime and EndTime are clock labels in "HH:MM" form.
type AvailabilitySlot struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Rating holds a single patient's review of a doctor. A patient has at
// most one rating per doctor; re-rating replaces the entry in place.
type Rating struct {
	PatientID string    `json:"patient"`
	Score     int       `json:"rating"`
	Review    string    `json:"review"`
	Date      time.Time `json:"date"`
}

type Doctor struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user"`
	Specialization  string             `json:"specialization"`
	Qualifications  []string           `json:"qualifications"`
	Experience      int                `json:"experience"`
	ConsultationFee float64            `json:"consultationFee"`
	Availability    []AvailabilitySlot `json:"availability"`
	Ratings         []Rating           `json:"ratings"`
	CreatedAt       time.Time          `json:"created_at"`
}

// AverageRating reduces the ratings list to a mean score, 0 when unrated.
func (d *Doctor) AverageRating() float64 {
	if len(d.Ratings) == 0 {
		return 0
	}
	total := 0
	for _, r := range d.Ratings {
		total += r.Score
	}
	return float64(total) / float64(len(d.Ratings))
}
