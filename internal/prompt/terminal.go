package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles shared by the prompt models.
var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	checkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Terminal is the interactive Decider used by the CLI. Each question runs a
// small Bubble Tea program on the controlling terminal and blocks until the
// operator answers.
type Terminal struct{}

// Confirm asks a yes/no question answered with a single keypress.
func (Terminal) Confirm(question string) (bool, error) {
	res, err := tea.NewProgram(confirmModel{question: question}).Run()
	if err != nil {
		return false, err
	}
	m := res.(confirmModel)
	if m.aborted {
		return false, ErrAborted
	}
	return m.answer, nil
}

// ChooseConflict presents the four conflict resolutions for an occupied
// destination name.
func (Terminal) ChooseConflict(destName string) (ConflictChoice, error) {
	m := choiceModel{
		title: fmt.Sprintf("Conflict: %q already exists", destName),
		options: []string{
			"Skip this file",
			"Rename with suffix (file_1, file_2, …)",
			"Backup existing file",
			"Overwrite existing file",
		},
	}
	res, err := tea.NewProgram(m).Run()
	if err != nil {
		return ChoiceSkip, err
	}
	cm := res.(choiceModel)
	if cm.aborted {
		return ChoiceSkip, ErrAborted
	}
	return ConflictChoice(cm.cursor), nil
}

// AskString asks for a line of text; empty input yields fallback.
func (t Terminal) AskString(question, fallback string) (string, error) {
	res, err := tea.NewProgram(newInputModel(question, fallback, nil)).Run()
	if err != nil {
		return "", err
	}
	m := res.(inputModel)
	if m.aborted {
		return "", ErrAborted
	}
	v := strings.TrimSpace(m.input.Value())
	if v == "" {
		return fallback, nil
	}
	return v, nil
}

// AskInt asks for an integer; empty input yields fallback.
func (t Terminal) AskInt(question string, fallback int) (int, error) {
	validate := func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if _, err := strconv.Atoi(s); err != nil {
			return fmt.Errorf("not a whole number")
		}
		return nil
	}
	res, err := tea.NewProgram(newInputModel(question, strconv.Itoa(fallback), validate)).Run()
	if err != nil {
		return 0, err
	}
	m := res.(inputModel)
	if m.aborted {
		return 0, ErrAborted
	}
	v := strings.TrimSpace(m.input.Value())
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

// SelectFolders shows a multi-select of subfolders; space toggles, "a"
// selects all, enter confirms.
func (Terminal) SelectFolders(folders []Folder) ([]Folder, error) {
	m := folderModel{
		folders:  folders,
		selected: make(map[int]bool, len(folders)),
	}
	res, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, err
	}
	fm := res.(folderModel)
	if fm.aborted {
		return nil, ErrAborted
	}
	var picked []Folder
	for i, f := range folders {
		if fm.selected[i] {
			picked = append(picked, f)
		}
	}
	return picked, nil
}

// --- confirm model ---

type confirmModel struct {
	question string
	answer   bool
	aborted  bool
	done     bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.answer, m.done = true, true
		return m, tea.Quit
	case "n", "N":
		m.answer, m.done = false, true
		return m, tea.Quit
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return questionStyle.Render(m.question) + subtleStyle.Render(" [y/n] ") + "\n"
}

// --- numbered choice model ---

type choiceModel struct {
	title   string
	options []string
	cursor  int
	aborted bool
	done    bool
}

func (m choiceModel) Init() tea.Cmd { return nil }

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch s := key.String(); s {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	default:
		// Direct numeric selection: 1-based option index.
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(m.options) {
			m.cursor = n - 1
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m choiceModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(questionStyle.Render(m.title) + "\n")
	for i, opt := range m.options {
		marker := "  "
		line := fmt.Sprintf("%d. %s", i+1, opt)
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
			line = cursorStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}
	b.WriteString(subtleStyle.Render("enter to select, 1-4 direct, esc to abort") + "\n")
	return b.String()
}

// --- text input model ---

type inputModel struct {
	question string
	input    textinput.Model
	validate func(string) error
	errMsg   string
	aborted  bool
	done     bool
}

func newInputModel(question, placeholder string, validate func(string) error) inputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 128
	return inputModel{question: question, input: ti, validate: validate}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if m.validate != nil {
				if err := m.validate(m.input.Value()); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	out := questionStyle.Render(m.question) + "\n" + m.input.View() + "\n"
	if m.errMsg != "" {
		out += lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(m.errMsg) + "\n"
	}
	return out
}

// --- folder multi-select model ---

type folderModel struct {
	folders  []Folder
	selected map[int]bool
	cursor   int
	aborted  bool
	done     bool
}

func (m folderModel) Init() tea.Cmd { return nil }

func (m folderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.folders)-1 {
			m.cursor++
		}
	case " ":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		for i := range m.folders {
			m.selected[i] = true
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m folderModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(questionStyle.Render("Select subfolders to process") + "\n")
	for i, f := range m.folders {
		box := "[ ]"
		style := lipgloss.NewStyle()
		if m.selected[i] {
			box = checkedStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s (%d files)", box, f.Name, f.FileCount)
		if i == m.cursor {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(style.Render(line) + "\n")
	}
	b.WriteString(subtleStyle.Render("space to toggle, a for all, enter to confirm, esc to abort") + "\n")
	return b.String()
}
