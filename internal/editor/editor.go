// Package editor implements the add/edit task form independently of any UI.
//
// A Dialog is opened blank (seeded with today's date) or prefilled from an
// existing task. It ends either cancelled, leaving the task list untouched,
// or confirmed after exactly one Add or Edit call on the list.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nibzard/simpletodo/internal/calendar"
)

// Validation errors returned by Confirm. The dialog stays open after either.
var (
	ErrEmptyName   = errors.New("enter a name for the task")
	ErrInvalidDate = errors.New("invalid date")
	ErrNotOpen     = errors.New("dialog is not open")
)

// Store is the subset of the task list the dialog writes to.
type Store interface {
	Add(name string, date calendar.Date)
	Edit(index int, name string, date calendar.Date) error
}

// State is the dialog lifecycle state.
type State int

const (
	StateOpen State = iota
	StateCancelled
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateCancelled:
		return "cancelled"
	case StateConfirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Field identifies a picker.
type Field int

const (
	FieldDay Field = iota
	FieldMonth
	FieldYear
)

// Dialog holds the form values of one add or edit session.
type Dialog struct {
	Name string

	day, month, year int
	index            int // -1 when adding
	state            State
}

// NewAdd opens a blank dialog with the pickers set to today.
func NewAdd(today calendar.Date) *Dialog {
	d := &Dialog{index: -1}
	d.setDate(today)
	return d
}

// NewEdit opens a dialog prefilled from the task at index.
func NewEdit(index int, name string, date calendar.Date) *Dialog {
	d := &Dialog{Name: name, index: index}
	d.setDate(date)
	return d
}

func (d *Dialog) setDate(date calendar.Date) {
	date = calendar.Clamp(date)
	d.year, d.month, d.day = date.Year, date.Month, date.Day
}

// Editing reports whether the dialog edits an existing task.
func (d *Dialog) Editing() bool {
	return d.index >= 0
}

// Index returns the edited row, or -1 when adding.
func (d *Dialog) Index() int {
	return d.index
}

// State returns the lifecycle state.
func (d *Dialog) State() State {
	return d.state
}

// Title is the heading shown above the form.
func (d *Dialog) Title() string {
	if d.Editing() {
		return "Edit task"
	}
	return "Add task"
}

// ConfirmLabel is the text of the confirm button.
func (d *Dialog) ConfirmLabel() string {
	if d.Editing() {
		return "OK"
	}
	return "Add"
}

// Day returns the day picker value.
func (d *Dialog) Day() int { return d.day }

// Month returns the month picker value.
func (d *Dialog) Month() int { return d.month }

// Year returns the year picker value.
func (d *Dialog) Year() int { return d.year }

// MaxDay is the current upper bound of the day picker.
func (d *Dialog) MaxDay() int {
	return calendar.MaxDay(d.year, d.month)
}

// Value returns the picker value of f.
func (d *Dialog) Value(f Field) int {
	switch f {
	case FieldDay:
		return d.day
	case FieldMonth:
		return d.month
	default:
		return d.year
	}
}

// Set assigns a picker value, clamped to the picker range. Changing month or
// year clamps the day down to the new last day of the month.
func (d *Dialog) Set(f Field, v int) {
	switch f {
	case FieldDay:
		d.day = v
	case FieldMonth:
		d.month = v
	case FieldYear:
		d.year = v
	}
	d.clamp()
}

// Step moves a picker by delta, stopping at the range bounds.
func (d *Dialog) Step(f Field, delta int) {
	d.Set(f, d.Value(f)+delta)
}

// SetDay, SetMonth and SetYear are shorthands for Set.
func (d *Dialog) SetDay(v int)   { d.Set(FieldDay, v) }
func (d *Dialog) SetMonth(v int) { d.Set(FieldMonth, v) }
func (d *Dialog) SetYear(v int)  { d.Set(FieldYear, v) }

// StepDay, StepMonth and StepYear are shorthands for Step.
func (d *Dialog) StepDay(delta int)   { d.Step(FieldDay, delta) }
func (d *Dialog) StepMonth(delta int) { d.Step(FieldMonth, delta) }
func (d *Dialog) StepYear(delta int)  { d.Step(FieldYear, delta) }

func (d *Dialog) clamp() {
	c := calendar.Clamp(calendar.Date{Year: d.year, Month: d.month, Day: d.day})
	d.year, d.month, d.day = c.Year, c.Month, c.Day
}

// Date builds the date from the pickers.
func (d *Dialog) Date() (calendar.Date, error) {
	date, err := calendar.New(d.year, d.month, d.day)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return date, nil
}

// Confirm validates the form and writes it to store. On a validation error the
// dialog stays open and store is not called. The name is stored as typed; only
// the emptiness check trims it.
func (d *Dialog) Confirm(store Store) error {
	if d.state != StateOpen {
		return ErrNotOpen
	}
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	date, err := d.Date()
	if err != nil {
		return err
	}
	if d.Editing() {
		if err := store.Edit(d.index, d.Name, date); err != nil {
			return err
		}
	} else {
		store.Add(d.Name, date)
	}
	d.state = StateConfirmed
	return nil
}

// Cancel closes the dialog without touching the store.
func (d *Dialog) Cancel() {
	if d.state == StateOpen {
		d.state = StateCancelled
	}
}
