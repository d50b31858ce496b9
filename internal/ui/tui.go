// Package ui provides the terminal task-list editor.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/simpletodo/internal/calendar"
	"github.com/nibzard/simpletodo/internal/config"
	"github.com/nibzard/simpletodo/internal/editor"
	"github.com/nibzard/simpletodo/internal/export"
	"github.com/nibzard/simpletodo/internal/todo"
)

// AppTitle is the base window title.
const AppTitle = "Simple ToDo"

// Messages shown in the error overlay.
const (
	msgEmptyName    = "Enter a name for the task."
	msgInvalidDate  = "Invalid date."
	msgLoadFailed   = "Unable to load file."
	msgSaveFailed   = "Unable to save file."
	msgExportFailed = "Unable to export file."
	msgDeleteFailed = "Unable to delete row."
	msgEditFailed   = "Unable to edit task."
)

// Option configures the model.
type Option func(*Model)

// WithStartupFile loads path when the model is created.
func WithStartupFile(path string) Option {
	return func(m *Model) {
		m.startupFile = path
	}
}

// WithToday overrides the date used to seed new tasks.
func WithToday(today func() calendar.Date) Option {
	return func(m *Model) {
		m.today = today
	}
}

// RunTUI starts the editor on list.
func RunTUI(ctx context.Context, cfg *config.Config, list *todo.List, logger *log.Logger, opts ...Option) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := NewModel(cfg, list, logger, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeFile
	modeConfirm
	modeMessage
)

// Model is the bubbletea model of the main window.
type Model struct {
	cfg    *config.Config
	list   *todo.List
	logger *log.Logger
	keys   KeyMap
	help   help.Model
	today  func() calendar.Date

	cursor   int
	offset   int
	selected map[int]bool

	mode       mode
	form       *taskForm
	prompt     *filePrompt
	confirm    *confirmDialog
	message    string
	returnMode mode

	status      string
	startupFile string
	width       int
	height      int
}

// NewModel creates the main window model.
func NewModel(cfg *config.Config, list *todo.List, logger *log.Logger, opts ...Option) *Model {
	if cfg == nil {
		cfg = &config.Config{ConfirmDelete: config.DefaultConfirmDelete}
	}
	if list == nil {
		list = todo.NewList()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Model{
		cfg:      cfg,
		list:     list,
		logger:   logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		today:    calendar.Today,
		selected: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.startupFile != "" {
		m.loadFile(m.startupFile)
	}
	m.updateKeys()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.Title())
}

// Title is the window title, including the open file name.
func (m *Model) Title() string {
	if p := m.list.Path(); p != "" {
		return AppTitle + " - " + filepath.Base(p)
	}
	return AppTitle
}

// Selection returns the selected rows in ascending order. Without marked
// rows the cursor row is the selection.
func (m *Model) Selection() []int {
	if len(m.selected) > 0 {
		rows := make([]int, 0, len(m.selected))
		for i := range m.selected {
			rows = append(rows, i)
		}
		sort.Ints(rows)
		return rows
	}
	if m.list.Len() == 0 {
		return nil
	}
	return []int{m.cursor}
}

func (m *Model) updateKeys() {
	n := len(m.Selection())
	m.keys.Edit.SetEnabled(n == 1)
	m.keys.Delete.SetEnabled(n >= 1)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.help.Width = size.Width
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeForm:
		cmd = m.updateForm(msg)
	case modeFile:
		cmd = m.updatePrompt(msg)
	case modeConfirm:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			m.updateConfirm(keyMsg)
		}
	case modeMessage:
		if _, ok := msg.(tea.KeyMsg); ok {
			m.message = ""
			m.mode = m.returnMode
		}
	default:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			cmd = m.updateList(keyMsg)
		}
	}
	m.updateKeys()
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-m.list.Len())
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(m.list.Len())
	case key.Matches(msg, m.keys.Select):
		if m.list.Len() > 0 {
			if m.selected[m.cursor] {
				delete(m.selected, m.cursor)
			} else {
				m.selected[m.cursor] = true
			}
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.list.Len() > 0 {
			if err := m.list.ToggleDone(m.cursor); err != nil {
				m.logger.Error("toggle done", "row", m.cursor, "err", err)
			}
		}
	case key.Matches(msg, m.keys.Add):
		m.openForm(editor.NewAdd(m.today()))
	case key.Matches(msg, m.keys.Edit):
		m.beginEdit()
	case key.Matches(msg, m.keys.Delete):
		m.beginDelete()
	case key.Matches(msg, m.keys.Save):
		m.openPrompt(actionSave)
	case key.Matches(msg, m.keys.Load):
		m.openPrompt(actionLoad)
	case key.Matches(msg, m.keys.Export):
		m.openPrompt(actionExport)
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	n := m.list.Len()
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

func (m *Model) resetSelection() {
	m.selected = make(map[int]bool)
	m.moveCursor(0)
}

func (m *Model) showMessage(text string, back mode) {
	m.message = text
	m.returnMode = back
	m.mode = modeMessage
}

// Task form

func (m *Model) openForm(d *editor.Dialog) {
	m.form = newTaskForm(d)
	m.mode = modeForm
}

func (m *Model) beginEdit() {
	rows := m.Selection()
	if len(rows) != 1 {
		return
	}
	task, err := m.list.At(rows[0])
	if err != nil {
		m.logger.Error("open edit dialog", "row", rows[0], "err", err)
		return
	}
	m.openForm(editor.NewEdit(rows[0], task.Name, task.Date))
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	result, cmd := m.form.update(msg)
	switch result {
	case formCancel:
		m.form.dialog.Cancel()
		m.closeForm()
	case formSubmit:
		m.submitForm()
	}
	return cmd
}

func (m *Model) submitForm() {
	d := m.form.dialog
	err := d.Confirm(m.list)
	switch {
	case err == nil:
		if d.Editing() {
			m.logger.Info("edited task", "row", d.Index())
			m.status = "Task updated"
		} else {
			m.logger.Info("added task", "rows", m.list.Len())
			m.status = "Task added"
			m.cursor = m.list.Len() - 1
			m.selected = make(map[int]bool)
		}
		m.closeForm()
	case errors.Is(err, editor.ErrEmptyName):
		m.logger.Warn("task rejected", "err", err)
		m.showMessage(msgEmptyName, modeForm)
	case errors.Is(err, editor.ErrInvalidDate):
		m.logger.Warn("task rejected", "err", err)
		m.showMessage(msgInvalidDate, modeForm)
	default:
		m.logger.Error("save task", "err", err)
		m.closeForm()
		m.showMessage(msgEditFailed, modeList)
	}
}

func (m *Model) closeForm() {
	m.form = nil
	m.mode = modeList
}

// Delete

func (m *Model) beginDelete() {
	rows := m.Selection()
	if len(rows) == 0 {
		return
	}
	if !m.cfg.ConfirmDelete {
		m.deleteRows(rows)
		return
	}
	noun := "task"
	if len(rows) > 1 {
		noun = "tasks"
	}
	m.confirm = newConfirmDialog("Delete "+noun, "Delete selected "+noun+"?")
	m.mode = modeConfirm
}

func (m *Model) updateConfirm(msg tea.KeyMsg) {
	yes, done := m.confirm.update(msg)
	if !done {
		return
	}
	m.confirm = nil
	m.mode = modeList
	if yes {
		m.deleteRows(m.Selection())
	}
}

func (m *Model) deleteRows(rows []int) {
	if err := m.list.Remove(rows...); err != nil {
		m.logger.Error("delete rows", "rows", rows, "err", err)
		m.showMessage(msgDeleteFailed, modeList)
		return
	}
	m.logger.Info("deleted tasks", "count", len(rows))
	m.status = fmt.Sprintf("Deleted %d", len(rows))
	if len(rows) == 1 {
		m.status += " task"
	} else {
		m.status += " tasks"
	}
	m.resetSelection()
}

// Files

func (m *Model) openPrompt(action fileAction) {
	m.prompt = newFilePrompt(action, m.promptInitial(action))
	m.mode = modeFile
}

func (m *Model) promptInitial(action fileAction) string {
	current := m.list.Path()
	if current == "" {
		dir := m.cfg.TodoDir
		if dir == "" {
			return ""
		}
		return strings.TrimSuffix(dir, string(os.PathSeparator)) + string(os.PathSeparator)
	}
	if action == actionExport {
		return strings.TrimSuffix(current, filepath.Ext(current)) + ".pdf"
	}
	return current
}

func (m *Model) updatePrompt(msg tea.Msg) tea.Cmd {
	path, done, cancelled, cmd := m.prompt.update(msg)
	if !done {
		return cmd
	}
	action := m.prompt.action
	m.prompt = nil
	m.mode = modeList
	if cancelled {
		return nil
	}

	switch action {
	case actionLoad:
		if m.loadFile(path) {
			return tea.SetWindowTitle(m.Title())
		}
	case actionSave:
		if m.saveFile(path) {
			return tea.SetWindowTitle(m.Title())
		}
	case actionExport:
		m.exportFile(path)
	}
	return nil
}

func (m *Model) loadFile(path string) bool {
	if err := m.list.Load(path); err != nil {
		m.logger.Warn("load failed", "path", path, "err", err)
		m.showMessage(msgLoadFailed, modeList)
		return false
	}
	m.logger.Info("loaded task file", "path", m.list.Path(), "tasks", m.list.Len())
	m.status = fmt.Sprintf("Loaded %s", filepath.Base(m.list.Path()))
	m.cursor = 0
	m.offset = 0
	m.resetSelection()
	return true
}

func (m *Model) saveFile(path string) bool {
	written, err := m.list.Save(path)
	if err != nil {
		m.logger.Warn("save failed", "path", written, "err", err)
		m.showMessage(msgSaveFailed, modeList)
		return false
	}
	m.logger.Info("saved task file", "path", written, "tasks", m.list.Len())
	m.status = fmt.Sprintf("Saved %s", filepath.Base(written))
	return true
}

func (m *Model) exportFile(path string) {
	if err := export.ToFile(path, "", m.Title(), m.list.Tasks()); err != nil {
		m.logger.Warn("export failed", "path", path, "err", err)
		m.showMessage(msgExportFailed, modeList)
		return
	}
	m.logger.Info("exported task list", "path", path, "tasks", m.list.Len())
	m.status = fmt.Sprintf("Exported %s", filepath.Base(path))
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
