package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/tabel/pkg/model"
)

// Theme holds the adaptive color palette for the table views.
type Theme struct {
	Header   lipgloss.AdaptiveColor
	Cursor   lipgloss.AdaptiveColor
	Selected lipgloss.AdaptiveColor
	Border   lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor

	// Row context severities.
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor
	Danger  lipgloss.AdaptiveColor
}

// DefaultTheme returns the standard palette, readable on both light and
// dark terminal backgrounds.
func DefaultTheme() Theme {
	return Theme{
		Header:   lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#FFFFFF"},
		Cursor:   lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#BD93F9"},
		Selected: lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#81c784"},
		Border:   lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#2a2a2a"},
		Muted:    lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"},

		Success: lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#50FA7B"},
		Warning: lipgloss.AdaptiveColor{Light: "#f57c00", Dark: "#ffb74d"},
		Info:    lipgloss.AdaptiveColor{Light: "#1565c0", Dark: "#8BE9FD"},
		Danger:  lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#e57373"},
	}
}

func (t Theme) contextColor(ctx model.RowContext) lipgloss.TerminalColor {
	switch ctx {
	case model.ContextSuccess:
		return t.Success
	case model.ContextWarning:
		return t.Warning
	case model.ContextInfo:
		return t.Info
	case model.ContextError:
		return t.Danger
	default:
		return lipgloss.NoColor{}
	}
}
