package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selfcare/selfcare/internal/domain/medication"
	"github.com/selfcare/selfcare/pkg/listing"
)

func medicationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "meds",
		Aliases: []string{"medications"},
		Short:   "Browse and manage your medications",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			client := medication.NewHTTPClient(a.rest)
			ctrl := listing.NewController[medication.Medication](client, a.cfg.DefaultLimit, medication.BlankDraft())
			return browse(cmd.Context(), ctrl, medicationRenderer())
		},
	}
	return cmd
}

func medicationRenderer() renderer[medication.Medication] {
	return renderer[medication.Medication]{
		primaryHeading:   "Current Medications",
		secondaryHeading: "Past Medications",
		line: func(m medication.Medication) string {
			line := fmt.Sprintf("#%d %s — %s at %s", m.ID, m.Name, m.Dosage, m.Time)
			if m.RefillDate != "" {
				line += " — refill by " + m.RefillDate
			}
			return line
		},
		editDraft: editMedicationDraft,
	}
}

// editMedicationDraft walks the medication form. The end date is only
// offered for past medications; flipping one back to current clears it.
func editMedicationDraft(in *bufio.Scanner, m medication.Medication) medication.Medication {
	m.Name = promptString(in, "Name", m.Name)
	m.Dosage = promptString(in, "Dosage (e.g. 20mg)", m.Dosage)
	m.Time = promptString(in, "Frequency (e.g. Once a day)", m.Time)
	m.StartDate = promptString(in, "Start date (YYYY-MM-DD)", m.StartDate)
	m.RefillDate = promptString(in, "Refill date (YYYY-MM-DD)", m.RefillDate)
	m.SetCurrent(promptBool(in, "Currently taking", m.IsCurrent))
	if !m.IsCurrent {
		m.EndDate = promptString(in, "End date (YYYY-MM-DD)", m.EndDate)
	}
	return m
}
