package dashboard

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/selfcare/selfcare/internal/domain/doctor"
	"github.com/selfcare/selfcare/internal/domain/medication"
	"github.com/selfcare/selfcare/internal/platform/apperr"
)

var now = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func TestUpcomingDoctorFiltering(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		included bool
	}{
		{"one day in the future", "2026-09-02", true},
		{"exactly now", "2026-09-01", false},
		{"one day in the past", "2026-08-31", false},
		{"empty", "", false},
		{"unparsable", "next tuesday", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := []doctor.Doctor{{ID: 1, Name: "Dr. Chen", NextSchedule: tt.date}}
			view := Upcoming(docs, nil, now)
			if got := len(view.Appointments) == 1; got != tt.included {
				t.Errorf("included = %v, want %v", got, tt.included)
			}
		})
	}
}

func TestUpcomingMedicationFiltering(t *testing.T) {
	meds := []medication.Medication{
		{ID: 1, Name: "Lipitor", RefillDate: "2026-09-10"},
		{ID: 2, Name: "Aspirin", RefillDate: "2026-08-01"},
		{ID: 3, Name: "Metformin", RefillDate: ""},
		{ID: 4, Name: "Zyrtec", RefillDate: "soonish"},
	}
	view := Upcoming(nil, meds, now)
	if len(view.Refills) != 1 || view.Refills[0].ID != 1 {
		t.Fatalf("refills = %+v, want only Lipitor", view.Refills)
	}
}

func TestUpcomingPreservesSourceOrder(t *testing.T) {
	docs := []doctor.Doctor{
		{ID: 3, NextSchedule: "2026-12-01"},
		{ID: 1, NextSchedule: "2026-10-01"},
		{ID: 2, NextSchedule: "2026-11-01"},
	}
	view := Upcoming(docs, nil, now)
	var ids []int
	for _, d := range view.Appointments {
		ids = append(ids, d.ID)
	}
	if !reflect.DeepEqual(ids, []int{3, 1, 2}) {
		t.Errorf("order = %v, want source order [3 1 2]", ids)
	}
}

func TestUpcomingIsPureForFixedNow(t *testing.T) {
	docs := []doctor.Doctor{
		{ID: 1, NextSchedule: "2026-09-05"},
		{ID: 2, NextSchedule: "2026-08-05"},
	}
	meds := []medication.Medication{
		{ID: 1, RefillDate: "2026-09-03"},
	}

	first := Upcoming(docs, meds, now)
	second := Upcoming(docs, meds, now)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over identical input diverged:\n%+v\n%+v", first, second)
	}
}

type stubDoctors struct {
	docs []doctor.Doctor
	err  error
}

func (s *stubDoctors) Active(context.Context) ([]doctor.Doctor, error) { return s.docs, s.err }

type stubMeds struct {
	meds []medication.Medication
	err  error
}

func (s *stubMeds) Current(context.Context) ([]medication.Medication, error) { return s.meds, s.err }

func TestRefreshKeepsLastGoodViewOnFailure(t *testing.T) {
	docs := &stubDoctors{docs: []doctor.Doctor{{ID: 1, Name: "Dr. Chen", NextSchedule: "2999-01-01"}}}
	meds := &stubMeds{}
	svc := NewService(docs, meds)
	ctx := context.Background()

	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := len(svc.View().Appointments); got != 1 {
		t.Fatalf("appointments = %d, want 1", got)
	}

	docs.err = apperr.Network("could not reach the server", fmt.Errorf("boom"))
	if err := svc.Refresh(ctx); err == nil {
		t.Fatal("expected refresh error")
	}
	if got := len(svc.View().Appointments); got != 1 {
		t.Errorf("failed refresh corrupted the view: %d appointments", got)
	}
	if svc.Message() == "" {
		t.Error("expected a user-facing message")
	}
}
