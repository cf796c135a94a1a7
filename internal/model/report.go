package model

import "time"

// Vitals holds the structured measurements attached to a report.
// All fields are optional; a report may carry none of them.
type Vitals struct {
	HeartRate     *float64 `json:"heartRate,omitempty"`
	SugarLevel    *float64 `json:"sugarLevel,omitempty"`
	BloodPressure string   `json:"bloodPressure,omitempty"`
}

// IsEmpty reports whether no vitals field is set.
func (v Vitals) IsEmpty() bool {
	return v.HeartRate == nil && v.SugarLevel == nil && v.BloodPressure == ""
}

// Report represents an uploaded medical report. The owner is fixed at
// creation; reports have no update or delete path.
type Report struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Filename  string    `json:"filename"`
	MimeType  string    `json:"mime_type"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	Vitals    Vitals    `json:"vitals"`
	CreatedAt time.Time `json:"created_at"`
}

// VitalsPoint is one entry in the vitals time series derived from a
// viewer's visible reports.
type VitalsPoint struct {
	Date          time.Time `json:"date"`
	HeartRate     *float64  `json:"heartRate,omitempty"`
	SugarLevel    *float64  `json:"sugarLevel,omitempty"`
	BloodPressure string    `json:"bloodPressure,omitempty"`
}
