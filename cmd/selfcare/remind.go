package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selfcare/selfcare/internal/domain/doctor"
	"github.com/selfcare/selfcare/internal/domain/medication"
	"github.com/selfcare/selfcare/internal/domain/reminder"
	"github.com/selfcare/selfcare/internal/platform/apperr"
)

func remindCmd() *cobra.Command {
	var (
		targetType string
		resourceID int
		lead       string
	)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Register a reminder for an appointment or refill",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			target, err := reminder.ParseTargetType(targetType)
			if err != nil {
				fmt.Println(apperr.Message(err))
				return err
			}

			d := reminder.NewDispatcher(reminder.NewHTTPSender(a.rest))
			d.SetTargetType(target)

			choices, err := loadChoices(cmd.Context(), a, target)
			if err != nil {
				fmt.Println(apperr.Message(err))
				return err
			}
			d.SetChoices(choices)

			if err := d.SelectResource(resourceID); err != nil {
				fmt.Println(apperr.Message(err))
				return err
			}

			msg, err := d.Submit(cmd.Context(), reminder.LeadTime(lead))
			if err != nil {
				fmt.Println(apperr.Message(err))
				return err
			}
			fmt.Println(msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&targetType, "type", "doctor", "reminder target: doctor or medication")
	cmd.Flags().IntVar(&resourceID, "id", 0, "id of the doctor or medication")
	cmd.Flags().StringVar(&lead, "lead", "24h", "lead time: 24h or 7d")
	return cmd
}

// loadChoices pulls the selectable ids from the collection matching the
// target type: active doctors or current medications.
func loadChoices(ctx context.Context, a *app, target reminder.TargetType) ([]reminder.Choice, error) {
	switch target {
	case reminder.TargetDoctor:
		docs, err := doctor.NewHTTPClient(a.rest).Active(ctx)
		if err != nil {
			return nil, err
		}
		choices := make([]reminder.Choice, 0, len(docs))
		for _, d := range docs {
			choices = append(choices, reminder.Choice{ID: d.ID, Name: d.Name})
		}
		return choices, nil
	case reminder.TargetMedication:
		meds, err := medication.NewHTTPClient(a.rest).Current(ctx)
		if err != nil {
			return nil, err
		}
		choices := make([]reminder.Choice, 0, len(meds))
		for _, m := range meds {
			choices = append(choices, reminder.Choice{ID: m.ID, Name: m.Name + " - " + m.Time})
		}
		return choices, nil
	}
	return nil, apperr.Validation("unknown reminder target %q", target)
}
