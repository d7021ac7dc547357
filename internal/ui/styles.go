// Package ui holds terminal styles for assertion failure output.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Fail styles the banner framing a snapshot mismatch
	Fail = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF3838"))

	// Detail styles secondary failure information such as file paths
	Detail = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF6B6B"))
)
