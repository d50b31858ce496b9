package editor

import (
	"errors"
	"testing"

	"github.com/nibzard/simpletodo/internal/calendar"
	"github.com/nibzard/simpletodo/internal/todo"
)

func TestNewAddSeedsToday(t *testing.T) {
	today := calendar.Date{Year: 2024, Month: 7, Day: 14}
	d := NewAdd(today)

	if d.Editing() || d.Index() != -1 {
		t.Error("add dialog should not be editing")
	}
	if d.Name != "" {
		t.Errorf("Name: got %q, want empty", d.Name)
	}
	if d.Day() != 14 || d.Month() != 7 || d.Year() != 2024 {
		t.Errorf("pickers: got %d-%d-%d", d.Year(), d.Month(), d.Day())
	}
	if d.Title() != "Add task" || d.ConfirmLabel() != "Add" {
		t.Errorf("labels: %q / %q", d.Title(), d.ConfirmLabel())
	}
	if d.State() != StateOpen {
		t.Errorf("State: got %v, want open", d.State())
	}
}

func TestNewEditPrefills(t *testing.T) {
	d := NewEdit(3, "Pay rent", calendar.Date{Year: 2025, Month: 1, Day: 31})
	if !d.Editing() || d.Index() != 3 {
		t.Error("edit dialog should report its index")
	}
	if d.Name != "Pay rent" || d.Day() != 31 || d.Month() != 1 || d.Year() != 2025 {
		t.Errorf("prefill: %q %d-%d-%d", d.Name, d.Year(), d.Month(), d.Day())
	}
	if d.Title() != "Edit task" || d.ConfirmLabel() != "OK" {
		t.Errorf("labels: %q / %q", d.Title(), d.ConfirmLabel())
	}
}

func TestDayClamping(t *testing.T) {
	d := NewAdd(calendar.Date{Year: 2023, Month: 1, Day: 30})

	d.SetMonth(2)
	if d.Day() != 28 {
		t.Errorf("2023-02: day got %d, want 28", d.Day())
	}
	if d.MaxDay() != 28 {
		t.Errorf("MaxDay: got %d, want 28", d.MaxDay())
	}

	d.SetDay(30)
	if d.Day() != 28 {
		t.Errorf("day cannot exceed max: got %d", d.Day())
	}

	d.SetYear(2024)
	if d.MaxDay() != 29 {
		t.Errorf("2024-02 MaxDay: got %d, want 29", d.MaxDay())
	}
	d.SetDay(30)
	if d.Day() != 29 {
		t.Errorf("2024-02: day got %d, want 29", d.Day())
	}

	d.SetYear(2023)
	if d.Day() != 28 {
		t.Errorf("back to 2023: day got %d, want 28", d.Day())
	}
}

func TestPickerRanges(t *testing.T) {
	d := NewAdd(calendar.Date{Year: 1900, Month: 1, Day: 1})

	d.Step(FieldYear, -1)
	d.Step(FieldMonth, -1)
	d.Step(FieldDay, -1)
	if d.Year() != 1900 || d.Month() != 1 || d.Day() != 1 {
		t.Errorf("lower bounds: %d-%d-%d", d.Year(), d.Month(), d.Day())
	}

	d.SetYear(9999)
	d.Step(FieldYear, 1)
	d.SetMonth(12)
	d.Step(FieldMonth, 1)
	d.SetDay(31)
	d.Step(FieldDay, 1)
	if d.Year() != 9999 || d.Month() != 12 || d.Day() != 31 {
		t.Errorf("upper bounds: %d-%d-%d", d.Year(), d.Month(), d.Day())
	}
}

func TestStepShorthandsClampDay(t *testing.T) {
	d := NewAdd(calendar.Date{Year: 2024, Month: 1, Day: 31})

	d.StepMonth(1)
	if d.Month() != 2 || d.Day() != 29 {
		t.Fatalf("2024-02: month %d day %d, want 2/29", d.Month(), d.Day())
	}
	d.StepYear(-1)
	if d.Year() != 2023 || d.Day() != 28 {
		t.Fatalf("2023-02: year %d day %d, want 2023/28", d.Year(), d.Day())
	}
	d.StepDay(-27)
	d.StepDay(-1)
	if d.Day() != 1 {
		t.Errorf("day below range: got %d, want 1", d.Day())
	}
}

func TestConfirmAdd(t *testing.T) {
	list := todo.NewList()
	d := NewAdd(calendar.Date{Year: 2024, Month: 5, Day: 1})
	d.Name = "  Water plants "

	if err := d.Confirm(list); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if d.State() != StateConfirmed {
		t.Errorf("State: got %v", d.State())
	}
	if list.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", list.Len())
	}
	got, _ := list.At(0)
	if got.Name != "  Water plants " || got.Done || got.Date != (calendar.Date{Year: 2024, Month: 5, Day: 1}) {
		t.Errorf("added task: %+v", got)
	}

	if err := d.Confirm(list); !errors.Is(err, ErrNotOpen) {
		t.Errorf("second Confirm: got %v, want ErrNotOpen", err)
	}
	if list.Len() != 1 {
		t.Errorf("second Confirm must not add")
	}
}

func TestConfirmEditKeepsDone(t *testing.T) {
	list := todo.NewList(
		todo.Task{Done: true, Name: "old", Date: calendar.Date{Year: 2024, Month: 1, Day: 1}},
	)
	d := NewEdit(0, "old", calendar.Date{Year: 2024, Month: 1, Day: 1})
	d.Name = "new"
	d.SetMonth(3)

	if err := d.Confirm(list); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	got, _ := list.At(0)
	want := todo.Task{Done: true, Name: "new", Date: calendar.Date{Year: 2024, Month: 3, Day: 1}}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestConfirmEmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		list := todo.NewList()
		d := NewAdd(calendar.Today())
		d.Name = name

		if err := d.Confirm(list); !errors.Is(err, ErrEmptyName) {
			t.Errorf("Confirm(%q): got %v, want ErrEmptyName", name, err)
		}
		if d.State() != StateOpen {
			t.Errorf("dialog should stay open, got %v", d.State())
		}
		if list.Len() != 0 {
			t.Errorf("store modified for name %q", name)
		}
	}
}

func TestCancel(t *testing.T) {
	list := todo.NewList()
	d := NewAdd(calendar.Today())
	d.Name = "discarded"
	d.Cancel()

	if d.State() != StateCancelled {
		t.Errorf("State: got %v", d.State())
	}
	if err := d.Confirm(list); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Confirm after Cancel: got %v", err)
	}
	if list.Len() != 0 {
		t.Error("cancel must not touch the store")
	}
}

func TestConfirmEditOutOfRange(t *testing.T) {
	list := todo.NewList()
	d := NewEdit(2, "ghost", calendar.Today())
	err := d.Confirm(list)
	if !errors.Is(err, todo.ErrIndexOutOfRange) {
		t.Errorf("got %v, want ErrIndexOutOfRange", err)
	}
	if d.State() != StateOpen {
		t.Errorf("State: got %v", d.State())
	}
}
