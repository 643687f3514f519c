package reminder

import "github.com/selfcare/selfcare/internal/platform/apperr"

// TargetType tags which collection a reminder points into. The tag keeps a
// doctor id from ever being submitted as a medication reminder.
type TargetType string

const (
	TargetDoctor     TargetType = "doctor"
	TargetMedication TargetType = "medication"
)

// ParseTargetType validates a user-supplied target type.
func ParseTargetType(s string) (TargetType, error) {
	switch TargetType(s) {
	case TargetDoctor, TargetMedication:
		return TargetType(s), nil
	}
	return "", apperr.Validation("reminder target must be %q or %q", TargetDoctor, TargetMedication)
}

// LeadTime is how far ahead of the event the reminder fires. The backend
// accepts exactly these values; no arbitrary duration exists.
type LeadTime string

const (
	Lead24Hours LeadTime = "24h"
	Lead7Days   LeadTime = "7d"
)

// ParseLeadTime validates a user-supplied lead time.
func ParseLeadTime(s string) (LeadTime, error) {
	switch LeadTime(s) {
	case Lead24Hours, Lead7Days:
		return LeadTime(s), nil
	}
	return "", apperr.Validation("lead time must be %q or %q", Lead24Hours, Lead7Days)
}

// Request is one reminder registration. It is transient: nothing is kept
// client-side after submission.
type Request struct {
	Type       TargetType `json:"type"`
	ID         int        `json:"id"`
	TimeBefore LeadTime   `json:"time_before"`
}

// Choice is one selectable resource from the currently loaded collection.
type Choice struct {
	ID   int
	Name string
}
