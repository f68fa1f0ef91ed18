package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/udisondev/zelda/internal/status"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7")).Bold(true)
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#565F89"))
	lineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0CAF5")).PaddingLeft(2)
	statStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ECE6A"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7768E")).Bold(true)
)

// symbolColor drops the alpha byte; terminals can't blend.
func symbolColor(c status.Color) lipgloss.Color {
	if c == 0 {
		return lipgloss.Color("#E0AF68")
	}
	return lipgloss.Color(fmt.Sprintf("#%06X", uint32(c)>>8))
}

func titleStyle(c status.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(symbolColor(c)).Bold(true)
}
