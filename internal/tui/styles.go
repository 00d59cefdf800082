package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan  = lipgloss.Color("36")
	colorAmber = lipgloss.Color("220")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeading   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	styleMetric    = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim       = lipgloss.NewStyle().Foreground(colorDim)
	styleText      = lipgloss.NewStyle().Foreground(colorGray)
	styleWarm      = lipgloss.NewStyle().Foreground(colorAmber)
	styleNavItem   = lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
	styleNavActive = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1).Underline(true)
)

const (
	iconDot      = "●"
	iconDotEmpty = "○"
	iconBar      = "━"
	iconTrack    = "─"
)
