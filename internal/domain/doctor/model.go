package doctor

// Doctor is one tracked care provider. Dates travel as YYYY-MM-DD strings
// or empty, exactly as the backend stores them. The server partitions
// doctors into active and past; the client never re-derives that split.
type Doctor struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Specialty    string `json:"specialty"`
	FirstSeen    string `json:"first_seen"`
	NextSchedule string `json:"next_schedule"`
	IsActive     bool   `json:"is_active"`
	Notes        string `json:"notes,omitempty"`
}

// Key implements listing.Resource.
func (d Doctor) Key() int { return d.ID }

// Label implements listing.Resource.
func (d Doctor) Label() string { return d.Name }

// BlankDraft is the form's empty state: a new doctor starts active.
func BlankDraft() Doctor {
	return Doctor{IsActive: true}
}

// SetActive flips the active flag. Turning a past doctor active clears the
// next scheduled visit in the same mutation, so an active record never
// carries a terminal date; re-affirming an already-active doctor leaves
// the date alone.
func (d *Doctor) SetActive(active bool) {
	if active && !d.IsActive {
		d.NextSchedule = ""
	}
	d.IsActive = active
}
