// Package ui provides the visual styling for the chatlist terminal UI.
// Light and dark palettes share the same semantic colors.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f6f7f9")
	LightForeground = lipgloss.Color("#1c2433")
	LightPrimary    = lipgloss.Color("#1f5fbf") // Header blue
	LightAccent     = lipgloss.Color("#2e8b57") // Sent-message green
	LightMuted      = lipgloss.Color("#8a93a3")
	LightBorder     = lipgloss.Color("#d5dae1")
	LightSelected   = lipgloss.Color("#e4ecf8")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#121821")
	DarkForeground = lipgloss.Color("#eef1f5")
	DarkPrimary    = lipgloss.Color("#6ea8ff")
	DarkAccent     = lipgloss.Color("#5cc98a")
	DarkMuted      = lipgloss.Color("#6b7585")
	DarkBorder     = lipgloss.Color("#2b3442")
	DarkSelected   = lipgloss.Color("#1e2a3b")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935") // Delete
	Warning     = lipgloss.Color("#ffb300") // Rename mode
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Selected   lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Selected:   LightSelected,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Selected:   DarkSelected,
		IsDark:     true,
	}
}

// ThemeFor resolves a configured preference ("light", "dark" or "auto").
func ThemeFor(pref string) Theme {
	switch strings.ToLower(pref) {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme auto-detects based on terminal or returns light mode
func DetectTheme() Theme {
	// Explicit preference wins
	if os.Getenv("CHATLIST_DARK_MODE") == "1" {
		return DarkTheme()
	}

	// Format is usually "foreground;background"
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			// 0-6 and 8 (dark grey) are dark backgrounds
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
		}
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Roster
	Row         lipgloss.Style
	SelectedRow lipgloss.Style
	Avatar      lipgloss.Style
	Renaming    lipgloss.Style
	Delete      lipgloss.Style

	// Thread
	LocalBubble  lipgloss.Style
	RemoteBubble lipgloss.Style
	Sender       lipgloss.Style

	// Inputs
	Prompt      lipgloss.Style
	Input       lipgloss.Style
	InputBorder lipgloss.Style

	// Text
	Muted   lipgloss.Style
	Spinner lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		// Layout styles
		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(0, 1),

		// Roster styles
		Row: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 1),

		SelectedRow: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Selected).
			Padding(0, 1).
			Bold(true),

		Avatar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Renaming: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Delete: lipgloss.NewStyle().
			Foreground(Destructive),

		// Thread styles
		LocalBubble: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),

		RemoteBubble: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Border),

		Sender: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		// Input styles
		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		InputBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
