package tui

import "github.com/charmbracelet/lipgloss"

var (
	textMutedColor     = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#696969"}
	borderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	borderFocusColor   = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#54A0FF"}
	successColor       = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	errorColor         = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	buttonTextColor    = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	buttonBgColor      = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	buttonFocusBgColor = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	buttonDisabledBg   = lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#2D2D2D"}

	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	mutedStyle = lipgloss.NewStyle().Foreground(textMutedColor)
	labelStyle = lipgloss.NewStyle().Width(12)

	invalidLabelStyle = labelStyle.Foreground(errorColor).Bold(true)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderDefaultColor).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.BorderForeground(borderFocusColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(buttonTextColor)

	buttonStyle         = baseButtonStyle.Background(buttonBgColor)
	buttonFocusedStyle  = baseButtonStyle.Background(buttonFocusBgColor).Underline(true)
	buttonDisabledStyle = baseButtonStyle.Background(buttonDisabledBg).Foreground(textMutedColor)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(0, 1)

	errorTextStyle = lipgloss.NewStyle().Foreground(errorColor)

	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(successColor).
			Padding(0, 1)
)
