package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the chat interface.
type Styles struct {
	Title      lipgloss.Style
	You        lipgloss.Style
	Assistant  lipgloss.Style
	Failure    lipgloss.Style
	Context    lipgloss.Style
	Status     lipgloss.Style
	Warning    lipgloss.Style
	InputBox   lipgloss.Style
	Transcript lipgloss.Style
}

// DefaultStyles returns the default chat theme.
func DefaultStyles() *Styles {
	return &Styles{
		Title:      lipgloss.NewStyle().Bold(true),
		You:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Assistant:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Context:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		InputBox:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Transcript: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}
