// Package reminder submits a single reminder registration against a
// resource chosen from whichever collection is the current target type.
package reminder

import (
	"context"
	"sync"

	"github.com/selfcare/selfcare/internal/platform/apperr"
)

// Sender delivers the registration to the backend and returns the
// server-provided confirmation message.
type Sender interface {
	SetReminder(ctx context.Context, req Request) (string, error)
}

// Dispatcher holds the in-progress selection. Selections are type-scoped:
// switching the target type invalidates both the loaded choices and any
// selected id. Nothing is retained after a successful submission.
type Dispatcher struct {
	mu       sync.Mutex
	sender   Sender
	target   TargetType
	choices  []Choice
	selected *int
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender, target: TargetDoctor}
}

// TargetType returns the current target type.
func (d *Dispatcher) TargetType() TargetType {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.target
}

// SetTargetType switches the target collection. An id valid for one type
// is meaningless for the other, so any prior selection and choices are
// dropped.
func (d *Dispatcher) SetTargetType(t TargetType) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t == d.target {
		return
	}
	d.target = t
	d.choices = nil
	d.selected = nil
}

// SetChoices installs the selectable resources for the current target
// type, as loaded from that collection.
func (d *Dispatcher) SetChoices(choices []Choice) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.choices = choices
	if d.selected != nil && !contains(d.choices, *d.selected) {
		d.selected = nil
	}
}

// SelectResource picks id from the loaded choices.
func (d *Dispatcher) SelectResource(id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !contains(d.choices, id) {
		return apperr.Validation("selection is not in the loaded %s list", d.target)
	}
	d.selected = &id
	return nil
}

// Selected returns the selected resource id, or nil.
func (d *Dispatcher) Selected() *int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selected == nil {
		return nil
	}
	id := *d.selected
	return &id
}

// Submit registers the reminder. Target type, selection and lead time must
// all be set; otherwise it fails locally without a network call. On
// success the selection is cleared and the server's confirmation message
// returned.
func (d *Dispatcher) Submit(ctx context.Context, lead LeadTime) (string, error) {
	d.mu.Lock()
	target := d.target
	selected := d.selected
	d.mu.Unlock()

	if target == "" {
		return "", apperr.Validation("please choose a reminder target")
	}
	if selected == nil {
		return "", apperr.Validation("please select a %s first", target)
	}
	if _, err := ParseLeadTime(string(lead)); err != nil {
		return "", err
	}

	msg, err := d.sender.SetReminder(ctx, Request{
		Type:       target,
		ID:         *selected,
		TimeBefore: lead,
	})
	if err != nil {
		return "", err
	}

	d.mu.Lock()
	d.selected = nil
	d.mu.Unlock()
	return msg, nil
}

func contains(choices []Choice, id int) bool {
	for _, c := range choices {
		if c.ID == id {
			return true
		}
	}
	return false
}
