package todo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nibzard/simpletodo/internal/calendar"
)

// ErrIndexOutOfRange is returned when a row position does not exist.
var ErrIndexOutOfRange = errors.New("task index out of range")

// Task represents a single entry in the task list.
type Task struct {
	Done bool
	Name string
	Date calendar.Date
}

// List is the ordered task list. Rows are identified by position only.
type List struct {
	tasks []Task
	path  string
}

// NewList returns a list holding a copy of tasks.
func NewList(tasks ...Task) *List {
	l := &List{}
	l.Replace(tasks)
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// At returns the task at index.
func (l *List) At(index int) (Task, error) {
	if err := l.checkIndex(index); err != nil {
		return Task{}, err
	}
	return l.tasks[index], nil
}

// Tasks returns a copy of all tasks in display order.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Path returns the file the list was last loaded from or saved to.
func (l *List) Path() string {
	return l.path
}

// Replace swaps the whole list for a copy of tasks.
func (l *List) Replace(tasks []Task) {
	l.tasks = make([]Task, len(tasks))
	copy(l.tasks, tasks)
}

// Add appends a new, not yet done task.
func (l *List) Add(name string, date calendar.Date) {
	l.tasks = append(l.tasks, Task{Name: name, Date: date})
}

// Edit replaces the name and date of the task at index. The done flag is kept.
func (l *List) Edit(index int, name string, date calendar.Date) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	l.tasks[index].Name = name
	l.tasks[index].Date = date
	return nil
}

// ToggleDone flips the done flag of the task at index.
func (l *List) ToggleDone(index int) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	l.tasks[index].Done = !l.tasks[index].Done
	return nil
}

// Remove deletes the tasks at the given positions. Positions may be passed in
// any order and may repeat; removal runs from the highest index down so the
// remaining tasks keep their relative order. Nothing is removed if any
// position is out of range.
func (l *List) Remove(indices ...int) error {
	if len(indices) == 0 {
		return nil
	}
	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	for _, idx := range sorted {
		if err := l.checkIndex(idx); err != nil {
			return err
		}
	}

	last := -1
	for _, idx := range sorted {
		if idx == last {
			continue
		}
		l.tasks = append(l.tasks[:idx], l.tasks[idx+1:]...)
		last = idx
	}
	return nil
}

func (l *List) checkIndex(index int) error {
	if index < 0 || index >= len(l.tasks) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(l.tasks))
	}
	return nil
}
