package medication

// Medication is one tracked prescription. Time is the free-text frequency
// ("Once a day"); dates travel as YYYY-MM-DD strings or empty. The server
// partitions medications into current and past.
type Medication struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Dosage     string `json:"dosage"`
	Time       string `json:"time"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	RefillDate string `json:"refill_date"`
	IsCurrent  bool   `json:"is_current"`
}

// Key implements listing.Resource.
func (m Medication) Key() int { return m.ID }

// Label implements listing.Resource.
func (m Medication) Label() string { return m.Name }

// BlankDraft is the form's empty state: a new medication starts current.
func BlankDraft() Medication {
	return Medication{IsCurrent: true}
}

// SetCurrent flips the currently-taking flag. Moving a past medication
// back to current clears its end date in the same mutation; re-affirming
// an already-current medication leaves the end date alone.
func (m *Medication) SetCurrent(current bool) {
	if current && !m.IsCurrent {
		m.EndDate = ""
	}
	m.IsCurrent = current
}
