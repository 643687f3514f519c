package main

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/selfcare/selfcare/internal/domain/doctor"
	"github.com/selfcare/selfcare/internal/platform/apperr"
	"github.com/selfcare/selfcare/pkg/listing"
)

func doctorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Browse and manage your doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			client := doctor.NewHTTPClient(a.rest)
			ctrl := listing.NewController[doctor.Doctor](client, a.cfg.DefaultLimit, doctor.BlankDraft())
			return browse(cmd.Context(), ctrl, doctorRenderer())
		},
	}

	cmd.AddCommand(doctorShowCmd())
	cmd.AddCommand(doctorNotesCmd())
	return cmd
}

func doctorRenderer() renderer[doctor.Doctor] {
	return renderer[doctor.Doctor]{
		primaryHeading:   "Active Doctors",
		secondaryHeading: "Past Doctors",
		line: func(d doctor.Doctor) string {
			line := fmt.Sprintf("#%d %s — %s", d.ID, d.Name, d.Specialty)
			if d.NextSchedule != "" {
				line += " — next visit " + d.NextSchedule
			}
			return line
		},
		editDraft: editDoctorDraft,
	}
}

// editDoctorDraft walks the doctor form. The next-visit date is only
// offered for inactive doctors, and flipping a doctor back to active
// clears it, the same coupling the form enforces.
func editDoctorDraft(in *bufio.Scanner, d doctor.Doctor) doctor.Doctor {
	d.Name = promptString(in, "Name", d.Name)
	d.Specialty = promptString(in, "Specialty", d.Specialty)
	d.FirstSeen = promptString(in, "First seen (YYYY-MM-DD)", d.FirstSeen)
	d.SetActive(promptBool(in, "Active doctor", d.IsActive))
	if !d.IsActive {
		d.NextSchedule = promptString(in, "Next visit (YYYY-MM-DD)", d.NextSchedule)
	}
	return d
}

func doctorShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one doctor's profile, including notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return apperr.Validation("%q is not a doctor id", args[0])
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			d, err := doctor.NewHTTPClient(a.rest).Detail(cmd.Context(), id)
			if err != nil {
				fmt.Println(apperr.Message(err))
				return err
			}
			fmt.Printf("%s\n", d.Name)
			fmt.Printf("Specialty:  %s\n", d.Specialty)
			fmt.Printf("First seen: %s\n", orDash(d.FirstSeen))
			fmt.Printf("Next visit: %s\n", orDash(d.NextSchedule))
			status := "Active"
			if !d.IsActive {
				status = "Inactive"
			}
			fmt.Printf("Status:     %s\n", status)
			fmt.Printf("Notes:      %s\n", orDash(d.Notes))
			return nil
		},
	}
}

func doctorNotesCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "notes <id>",
		Short: "Replace the notes on one doctor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return apperr.Validation("%q is not a doctor id", args[0])
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := doctor.NewHTTPClient(a.rest).UpdateNotes(cmd.Context(), id, notes); err != nil {
				fmt.Println(apperr.Message(err))
				return err
			}
			fmt.Println("notes updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&notes, "text", "", "note text")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
