package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/selfcare/selfcare/internal/domain/dashboard"
	"github.com/selfcare/selfcare/internal/domain/doctor"
	"github.com/selfcare/selfcare/internal/domain/medication"
	"github.com/selfcare/selfcare/internal/platform/apperr"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show upcoming appointments and refills",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			svc := dashboard.NewService(
				doctor.NewHTTPClient(a.rest),
				medication.NewHTTPClient(a.rest),
			)
			if err := svc.Refresh(cmd.Context()); err != nil {
				fmt.Println(apperr.Message(err))
				return err
			}

			view := svc.View()

			fmt.Println("Upcoming Doctor Appointments")
			if len(view.Appointments) == 0 {
				fmt.Println("  No upcoming appointments.")
			}
			for _, d := range view.Appointments {
				fmt.Printf("  %s (%s) — %s\n", d.Name, d.Specialty, formatDate(d.NextSchedule))
			}

			fmt.Println("Upcoming Medication Refills")
			if len(view.Refills) == 0 {
				fmt.Println("  No upcoming refills.")
			}
			for _, m := range view.Refills {
				fmt.Printf("  %s — refill by %s\n", m.Name, formatDate(m.RefillDate))
			}
			return nil
		},
	}
}

// formatDate renders a stored YYYY-MM-DD date like "Jan 2, 2026". The
// aggregator only admits parseable dates, so the raw value is a fallback.
func formatDate(value string) string {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return value
	}
	return t.Format("Jan 2, 2006")
}
