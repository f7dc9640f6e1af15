package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("5")).
				MarginBottom(1)

	confirmBodyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7")).
				MarginBottom(1)

	yesButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Background(lipgloss.Color("0")).
			Padding(0, 1).
			MarginRight(1)

	noButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Background(lipgloss.Color("0")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)
)

// ConfirmModel asks before overwriting a file with merged content.
type ConfirmModel struct {
	Title    string
	Body     string
	Approved bool
	Done     bool
}

// NewConfirmModel builds a yes/no prompt. No is the default.
func NewConfirmModel(title, body string) ConfirmModel {
	return ConfirmModel{Title: title, Body: body}
}

// Init does nothing.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles the yes/no keys.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"))):
			m.Done = true
			m.Approved = false
			return m, tea.Quit
		case key.Matches(msg, key.NewBinding(key.WithKeys("left", "h"))):
			m.Approved = true
			return m, nil
		case key.Matches(msg, key.NewBinding(key.WithKeys("right", "l"))):
			m.Approved = false
			return m, nil
		case key.Matches(msg, key.NewBinding(key.WithKeys("y"))):
			m.Done = true
			m.Approved = true
			return m, tea.Quit
		case key.Matches(msg, key.NewBinding(key.WithKeys("n"))):
			m.Done = true
			m.Approved = false
			return m, tea.Quit
		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			m.Done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the prompt with the selected button underlined.
func (m ConfirmModel) View() string {
	var sb strings.Builder

	sb.WriteString(confirmTitleStyle.Render(m.Title))
	sb.WriteString("\n")
	sb.WriteString(confirmBodyStyle.Render(m.Body))
	sb.WriteString("\n\n")

	yes, no := "Write", "Cancel"
	if m.Approved {
		yes = selectedStyle.Render(yes)
	} else {
		no = selectedStyle.Render(no)
	}
	sb.WriteString(fmt.Sprintf("%s %s", yesButtonStyle.Render(yes), noButtonStyle.Render(no)))
	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render("(arrow keys to select, Enter to confirm, Esc to cancel)"))

	return sb.String()
}

// ConfirmWrite runs the prompt and reports the user's choice.
func ConfirmWrite(path string, hunkCount int) (bool, error) {
	body := fmt.Sprintf("Write the merged content back to %s? %d hunk(s) were resolved.", path, hunkCount)
	p := tea.NewProgram(NewConfirmModel("Write resolved file", body))
	result, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("error running confirm UI: %w", err)
	}
	final, ok := result.(ConfirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model type: %T", result)
	}
	return final.Approved, nil
}
