package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/simpletodo/internal/editor"
)

// formFocus is the focused control of the task form.
type formFocus int

const (
	focusName formFocus = iota
	focusDay
	focusMonth
	focusYear
	focusConfirm
	focusCancel
	focusCount
)

// formResult tells the main model what the form wants after a key.
type formResult int

const (
	formPending formResult = iota
	formSubmit
	formCancel
)

// taskForm renders and drives an editor.Dialog.
type taskForm struct {
	dialog *editor.Dialog
	name   textinput.Model
	focus  formFocus
	digits string
}

func newTaskForm(d *editor.Dialog) *taskForm {
	ti := textinput.New()
	ti.Placeholder = "Task name"
	ti.Prompt = ""
	ti.Width = 40
	ti.SetValue(d.Name)
	ti.CursorEnd()
	ti.Focus()
	return &taskForm{dialog: d, name: ti}
}

// sync copies the text field into the dialog.
func (f *taskForm) sync() {
	f.dialog.Name = f.name.Value()
}

func (f *taskForm) setFocus(focus formFocus) {
	f.commitDigits()
	f.focus = (focus + focusCount) % focusCount
	if f.focus == focusName {
		f.name.Focus()
	} else {
		f.name.Blur()
	}
}

// commitDigits applies the typed picker digits as one complete value.
func (f *taskForm) commitDigits() {
	if f.digits == "" {
		return
	}
	if field, ok := pickerField(f.focus); ok {
		if n, err := strconv.Atoi(f.digits); err == nil {
			f.dialog.Set(field, n)
		}
	}
	f.digits = ""
}

func pickerField(focus formFocus) (editor.Field, bool) {
	switch focus {
	case focusDay:
		return editor.FieldDay, true
	case focusMonth:
		return editor.FieldMonth, true
	case focusYear:
		return editor.FieldYear, true
	}
	return 0, false
}

func pickerWidth(field editor.Field) int {
	if field == editor.FieldYear {
		return 4
	}
	return 2
}

// update handles one message. Enter in the name field submits like the
// confirm button.
func (f *taskForm) update(msg tea.Msg) (formResult, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		return formPending, cmd
	}

	switch keyMsg.String() {
	case "esc":
		return formCancel, nil
	case "tab":
		f.setFocus(f.focus + 1)
		return formPending, nil
	case "shift+tab":
		f.setFocus(f.focus - 1)
		return formPending, nil
	case "enter":
		if f.focus == focusCancel {
			return formCancel, nil
		}
		f.commitDigits()
		f.sync()
		return formSubmit, nil
	}

	if field, ok := pickerField(f.focus); ok {
		f.updatePicker(field, keyMsg)
		return formPending, nil
	}
	if f.focus == focusName {
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		f.sync()
		return formPending, cmd
	}
	switch keyMsg.String() {
	case "left", "right":
		if f.focus == focusConfirm {
			f.setFocus(focusCancel)
		} else {
			f.setFocus(focusConfirm)
		}
	}
	return formPending, nil
}

func (f *taskForm) updatePicker(field editor.Field, msg tea.KeyMsg) {
	switch s := msg.String(); s {
	case "up", "+", "k":
		f.commitDigits()
		f.dialog.Step(field, 1)
	case "down", "-", "j":
		f.commitDigits()
		f.dialog.Step(field, -1)
	case "pgup":
		f.commitDigits()
		f.dialog.Step(field, 10)
	case "pgdown":
		f.commitDigits()
		f.dialog.Step(field, -10)
	case "left":
		f.setFocus(f.focus - 1)
	case "right":
		f.setFocus(f.focus + 1)
	case "backspace":
		if f.digits != "" {
			f.digits = f.digits[:len(f.digits)-1]
		}
	default:
		if len(s) != 1 || s[0] < '0' || s[0] > '9' {
			return
		}
		f.digits += s
		if len(f.digits) == pickerWidth(field) {
			f.commitDigits()
		}
	}
}

func (f *taskForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.dialog.Title()) + "\n\n")

	b.WriteString("Task name\n")
	nameBox := "[" + f.name.View() + "]"
	if f.focus == focusName {
		nameBox = cursorStyle.Render(">") + nameBox
	} else {
		nameBox = " " + nameBox
	}
	b.WriteString(nameBox + "\n\n")

	b.WriteString(fmt.Sprintf("%-6s %-7s %-6s\n", "Day", "Month", "Year"))
	b.WriteString(f.pickerView(focusDay, editor.FieldDay) + "  ")
	b.WriteString(f.pickerView(focusMonth, editor.FieldMonth) + "  ")
	b.WriteString(f.pickerView(focusYear, editor.FieldYear) + "\n")
	b.WriteString(disabledStyle.Render(fmt.Sprintf("days this month: 1-%d", f.dialog.MaxDay())) + "\n\n")

	b.WriteString(button(f.dialog.ConfirmLabel(), f.focus == focusConfirm) + "  ")
	b.WriteString(button("Cancel", f.focus == focusCancel) + "\n\n")
	b.WriteString(disabledStyle.Render("tab next field • ↑/↓ change value • enter confirm • esc cancel"))
	return dialogStyle.Render(b.String())
}

func (f *taskForm) pickerView(focus formFocus, field editor.Field) string {
	width := pickerWidth(field)
	text := fmt.Sprintf("%0*d", width, f.dialog.Value(field))
	if f.focus == focus && f.digits != "" {
		text = f.digits + strings.Repeat("_", width-len(f.digits))
	}
	cell := fmt.Sprintf("◂ %s ▸", text)
	if f.focus == focus {
		return focusStyle.Render(cell)
	}
	return cell
}

func button(label string, focused bool) string {
	text := "[ " + label + " ]"
	if focused {
		return focusStyle.Render(text)
	}
	return text
}
