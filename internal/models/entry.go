package models

// DateLayout is the calendar-date format used in timesheet records.
const DateLayout = "2006-01-02"

// Entry is one row of the timesheets collection. Rows have no identity beyond
// their position in the list; the admin bulk edit replaces the collection
// wholesale. Hours are not range-checked at this level (the web form clamps
// 0-24, the admin grid does not).
type Entry struct {
	Username string  `json:"username"`
	Date     string  `json:"date"`
	Project  string  `json:"project"`
	Hours    float64 `json:"hours"`
	Notes    string  `json:"notes"`
}
