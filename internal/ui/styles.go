package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")).
			PaddingLeft(1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true).
			PaddingLeft(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			PaddingLeft(1)

	leftLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("2"))

	rightLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("4"))

	baseLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("3"))

	leftLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2"))

	rightLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4"))

	baseLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	contextLineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("8"))

	resolvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("2"))

	unresolvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1"))

	resolutionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6"))
)
