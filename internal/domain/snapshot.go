package domain

// Snapshot is the full current state of the operation: every staff member,
// room and task, plus the recent activity window (oldest-first). It is the
// sole read contract exposed to callers and the response to every write.
type Snapshot struct {
	Staff    []Staff
	Rooms    []Room
	Tasks    []Task
	Activity []Activity
}
