package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/simpletodo/internal/todo"
)

// fileAction is what an accepted file prompt does.
type fileAction int

const (
	actionLoad fileAction = iota
	actionSave
	actionExport
)

func (a fileAction) title() string {
	switch a {
	case actionLoad:
		return "Load task list"
	case actionSave:
		return "Save task list"
	default:
		return "Export task list (.json or .pdf)"
	}
}

const maxListedFiles = 8

// filePrompt stands in for the file chooser: a path input plus the .todo
// files found next to the current path.
type filePrompt struct {
	action fileAction
	input  textinput.Model
	files  []string
}

func newFilePrompt(action fileAction, initial string) *filePrompt {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "path/to/list" + todo.Extension
	ti.Width = 60
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()

	p := &filePrompt{action: action, input: ti}
	if action != actionExport {
		p.files = listTodoFiles(promptDir(initial))
	}
	return p
}

func promptDir(path string) string {
	if path == "" {
		return "."
	}
	if strings.HasSuffix(path, string(os.PathSeparator)) {
		return path
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

// listTodoFiles returns the names of task files in dir.
func listTodoFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), todo.Extension) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// update reports done with the accepted path, or done and cancelled on esc.
// An empty path is not accepted.
func (p *filePrompt) update(msg tea.Msg) (path string, done, cancelled bool, cmd tea.Cmd) {
	if keyMsg, isKey := msg.(tea.KeyMsg); isKey {
		switch keyMsg.String() {
		case "esc":
			return "", true, true, nil
		case "enter":
			value := strings.TrimSpace(p.input.Value())
			if value == "" {
				return "", false, false, nil
			}
			return value, true, false, nil
		case "tab":
			p.complete()
			return "", false, false, nil
		}
	}
	p.input, cmd = p.input.Update(msg)
	return "", false, false, cmd
}

// complete fills in the first listed file matching the typed base name.
func (p *filePrompt) complete() {
	value := p.input.Value()
	dir := promptDir(value)
	prefix := ""
	if dir != value {
		prefix = filepath.Base(value)
	}
	for _, name := range p.files {
		if strings.HasPrefix(name, prefix) {
			p.input.SetValue(filepath.Join(dir, name))
			p.input.CursorEnd()
			return
		}
	}
}

func (p *filePrompt) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.action.title()) + "\n\n")
	b.WriteString(p.input.View() + "\n")
	if len(p.files) > 0 {
		b.WriteString("\n" + disabledStyle.Render("Simple ToDo files:") + "\n")
		for i, name := range p.files {
			if i == maxListedFiles {
				b.WriteString(disabledStyle.Render("  ...") + "\n")
				break
			}
			b.WriteString("  " + name + "\n")
		}
	}
	b.WriteString("\n" + disabledStyle.Render("enter accept • tab complete • esc cancel"))
	return dialogStyle.Render(b.String())
}

// confirmDialog is a Yes/No question defaulting to No.
type confirmDialog struct {
	title    string
	question string
	yes      bool
}

func newConfirmDialog(title, question string) *confirmDialog {
	return &confirmDialog{title: title, question: question}
}

// update returns done=true once answered.
func (c *confirmDialog) update(msg tea.KeyMsg) (answer, done bool) {
	switch msg.String() {
	case "y", "Y":
		return true, true
	case "n", "N", "esc":
		return false, true
	case "enter":
		return c.yes, true
	case "left", "right", "tab", "shift+tab", "h", "l":
		c.yes = !c.yes
	}
	return false, false
}

func (c *confirmDialog) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.title) + "\n\n")
	b.WriteString(c.question + "\n\n")
	b.WriteString(button("Yes", c.yes) + "  " + button("No", !c.yes))
	return dialogStyle.Render(b.String())
}
