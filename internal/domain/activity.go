package domain

// ActivityDateLayout is the calendar-date format used for activity entries
// and task completion dates.
const ActivityDateLayout = "2006-01-02"

// ActivityWindow is the number of recent entries retained for display.
const ActivityWindow = 50

// Activity is an append-only feed entry describing a completed mutation.
type Activity struct {
	ID    int64
	Event string
	Date  string
}
