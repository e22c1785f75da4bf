package models

type Facility struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	NameEn   string `json:"name_en"`
	Location string `json:"location"`
	Active   bool   `json:"active"`
}

type Court struct {
	ID         string `json:"id"`
	FacilityID string `json:"facility_id"`
	Name       string `json:"name"`
	Surface    string `json:"surface"`
	Active     bool   `json:"active"`
}

// TimeSlot is a discrete schedulable interval on the daily grid,
// e.g. 09:00-10:00. Start and End are HH:MM strings.
type TimeSlot struct {
	ID              string `json:"id"`
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"duration_minutes"`
}
