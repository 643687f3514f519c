// Package dashboard merges the active doctor and current medication
// collections into the upcoming view: everything whose relevant date is
// valid and strictly in the future.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/selfcare/selfcare/internal/domain/doctor"
	"github.com/selfcare/selfcare/internal/domain/medication"
	"github.com/selfcare/selfcare/internal/platform/apperr"
)

// DoctorSource supplies the complete active doctor partition.
type DoctorSource interface {
	Active(ctx context.Context) ([]doctor.Doctor, error)
}

// MedicationSource supplies the complete current medication partition.
type MedicationSource interface {
	Current(ctx context.Context) ([]medication.Medication, error)
}

// Overview is the computed upcoming view. Items keep the order the source
// collections returned them in; nothing is re-sorted, deduplicated or
// capped.
type Overview struct {
	Appointments []doctor.Doctor
	Refills      []medication.Medication
}

// Service fetches both collections and recomputes the view wholesale on
// every refresh. It holds no other mutable state.
type Service struct {
	doctors DoctorSource
	meds    MedicationSource
	now     func() time.Time

	mu   sync.Mutex
	view Overview
	msg  string
}

func NewService(doctors DoctorSource, meds MedicationSource) *Service {
	return &Service{
		doctors: doctors,
		meds:    meds,
		now:     time.Now,
	}
}

// Refresh refetches both collections and replaces the view. On failure the
// last good view is kept and the error surfaced as a message.
func (s *Service) Refresh(ctx context.Context) error {
	docs, err := s.doctors.Active(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	meds, err := s.meds.Current(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	view := Upcoming(docs, meds, s.now())

	s.mu.Lock()
	s.view = view
	s.msg = ""
	s.mu.Unlock()
	return nil
}

// View returns the last successfully computed overview.
func (s *Service) View() Overview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Message returns the user-facing message from the last failed refresh.
func (s *Service) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg
}

func (s *Service) fail(err error) {
	s.mu.Lock()
	s.msg = apperr.Message(err)
	s.mu.Unlock()
}

// Upcoming computes the overview for a fixed reference instant. The
// instant is sampled once per run, so every item is judged against the
// same "now"; calling it twice with the same inputs and instant yields the
// same output.
func Upcoming(docs []doctor.Doctor, meds []medication.Medication, now time.Time) Overview {
	var view Overview
	for _, d := range docs {
		if inFuture(d.NextSchedule, now) {
			view.Appointments = append(view.Appointments, d)
		}
	}
	for _, m := range meds {
		if inFuture(m.RefillDate, now) {
			view.Refills = append(view.Refills, m)
		}
	}
	return view
}

// inFuture reports whether value is a parseable date strictly later than
// now. Empty and unparsable values are excluded, not errors.
func inFuture(value string, now time.Time) bool {
	if value == "" {
		return false
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return false
	}
	return t.After(now)
}
