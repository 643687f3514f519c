package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/selfcare/selfcare/internal/platform/apperr"
	"github.com/selfcare/selfcare/pkg/listing"
)

// renderer is the type-specific part of the browse loop: headings, the
// one-line item rendering, and the field prompts for the form draft.
type renderer[T listing.Resource] struct {
	primaryHeading   string
	secondaryHeading string
	line             func(T) string
	editDraft        func(in *bufio.Scanner, current T) T
}

// browse is the interactive listing shared by doctors and medications. It
// drives the list controller the way the pages did: every filter change
// refetches, pagination is clamped at the boundaries, and add/edit share
// one form draft.
func browse[T listing.Resource](ctx context.Context, ctrl *listing.Controller[T], r renderer[T]) error {
	if err := ctrl.Reload(ctx); err != nil {
		fmt.Println(ctrl.Message())
	}
	render(ctrl, r)

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return in.Err()
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		var err error
		switch cmd {
		case "q", "quit", "exit":
			return nil
		case "help":
			printBrowseHelp()
			continue
		case "search":
			err = ctrl.SetSearch(ctx, strings.Join(args, " "))
		case "limit":
			var n int
			if n, err = parseIntArg(args); err == nil {
				err = ctrl.SetLimit(ctx, n)
			}
		case "sort":
			if len(args) != 1 {
				err = apperr.Validation("usage: sort <field>")
			} else {
				err = ctrl.SetSortBy(ctx, args[0])
			}
		case "order":
			switch strings.Join(args, "") {
			case "asc":
				err = ctrl.SetOrder(ctx, listing.OrderAsc)
			case "desc":
				err = ctrl.SetOrder(ctx, listing.OrderDesc)
			default:
				err = apperr.Validation("usage: order asc|desc")
			}
		case "page":
			var n int
			if n, err = parseIntArg(args); err == nil {
				err = ctrl.SetPage(ctx, n)
			}
		case "next":
			err = ctrl.SetPage(ctx, ctrl.Query().Page+1)
		case "prev":
			err = ctrl.SetPage(ctx, ctrl.Query().Page-1)
		case "reload":
			err = ctrl.Reload(ctx)
		case "add":
			ctrl.SetDraft(r.editDraft(in, ctrl.Draft()))
			err = ctrl.SubmitDraft(ctx)
		case "edit":
			var id int
			if id, err = parseIntArg(args); err == nil {
				item, ok := findItem(ctrl.Page(), id)
				if !ok {
					err = apperr.Validation("no item %d on this page", id)
					break
				}
				ctrl.BeginEdit(item)
				ctrl.SetDraft(r.editDraft(in, ctrl.Draft()))
				err = ctrl.SubmitDraft(ctx)
			}
		case "del":
			var id int
			if id, err = parseIntArg(args); err == nil {
				err = ctrl.DeleteItem(ctx, id)
			}
		default:
			fmt.Printf("unknown command %q (try help)\n", cmd)
			continue
		}

		if err != nil {
			fmt.Println(apperr.Message(err))
		}
		render(ctrl, r)
	}
}

func render[T listing.Resource](ctrl *listing.Controller[T], r renderer[T]) {
	page := ctrl.Page()
	q := ctrl.Query()

	fmt.Println(r.primaryHeading)
	if len(page.Primary) == 0 {
		fmt.Println("  (none)")
	}
	for _, item := range page.Primary {
		fmt.Println("  " + r.line(item))
	}

	fmt.Println(r.secondaryHeading)
	if len(page.Secondary) == 0 {
		fmt.Println("  (none)")
	}
	for _, item := range page.Secondary {
		fmt.Println("  " + r.line(item))
	}

	fmt.Printf("Page %d of %d", q.Page, page.TotalPages)
	if q.Search != "" {
		fmt.Printf("  search=%q", q.Search)
	}
	fmt.Println()
}

func printBrowseHelp() {
	fmt.Print(`commands:
  search <text>   filter by name (resets to page 1)
  limit <n>       items per page, typically 3, 5 or 10 (resets to page 1)
  sort <field>    sort key, e.g. id, name (resets to page 1)
  order asc|desc  sort direction (resets to page 1)
  page <n> / next / prev
  add             create from a fresh form
  edit <id>       edit an item on this page
  del <id>        delete an item
  reload          refetch the current page
  quit
`)
}

func parseIntArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, apperr.Validation("expected one numeric argument")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, apperr.Validation("%q is not a number", args[0])
	}
	return n, nil
}

func findItem[T listing.Resource](page listing.Page[T], id int) (T, bool) {
	for _, item := range page.Primary {
		if item.Key() == id {
			return item, true
		}
	}
	for _, item := range page.Secondary {
		if item.Key() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// promptString reads one form field, keeping the current value when the
// user just presses enter.
func promptString(in *bufio.Scanner, label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	if !in.Scan() {
		return current
	}
	text := strings.TrimSpace(in.Text())
	if text == "" {
		return current
	}
	if text == "-" {
		return ""
	}
	return text
}

// promptBool reads a y/n field, keeping the current value on enter.
func promptBool(in *bufio.Scanner, label string, current bool) bool {
	def := "y"
	if !current {
		def = "n"
	}
	fmt.Printf("%s (y/n) [%s]: ", label, def)
	if !in.Scan() {
		return current
	}
	switch strings.ToLower(strings.TrimSpace(in.Text())) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	return current
}
