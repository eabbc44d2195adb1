// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffinsight"
)

// Compile-time interface verification.
var _ diffinsight.Theme = (*Theme)(nil)

// Theme implements diffinsight.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles  diffinsight.Styles
	palette diffinsight.Palette
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() diffinsight.Styles {
	return t.styles
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() diffinsight.Palette {
	return t.palette
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeByName returns the theme called name: "dark", "light", or "auto".
// Auto picks the variant matching the terminal background.
func ThemeByName(name string) (*Theme, error) {
	switch name {
	case "", "dark":
		return DarkTheme(), nil
	case "light":
		return LightTheme(), nil
	case "auto":
		if lipgloss.HasDarkBackground() {
			return DarkTheme(), nil
		}
		return LightTheme(), nil
	default:
		return nil, fmt.Errorf("lipgloss: unknown theme %q", name)
	}
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		styles: diffinsight.Styles{
			Addition: diffinsight.ColorPair{
				Foreground: "#a6e3a1", // Green
				Background: "#004000", // Very dark green - syntax colors stay readable
			},
			Deletion: diffinsight.ColorPair{
				Foreground: "#f38ba8", // Red
				Background: "#3f0001", // Very dark red - syntax colors stay readable
			},
			Neutral: diffinsight.ColorPair{
				Foreground: "#6c7086", // Muted gray
			},
			Title: diffinsight.ColorPair{
				Foreground: "#cba6f7", // Mauve
			},
			Subtitle: diffinsight.ColorPair{
				Foreground: "#a6adc8",
			},
			Border: diffinsight.ColorPair{
				Foreground: "#45475a",
			},
			Focus: diffinsight.ColorPair{
				Foreground: "#89b4fa", // Blue
			},
			Issue: diffinsight.ColorPair{
				Foreground: "#f9e2af", // Yellow
			},
			Solution: diffinsight.ColorPair{
				Foreground: "#a6e3a1",
			},
			Muted: diffinsight.ColorPair{
				Foreground: "#6c7086",
			},
			Button: diffinsight.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#89b4fa",
			},
			Disabled: diffinsight.ColorPair{
				Foreground: "#6c7086",
				Background: "#313244",
			},
			ToastInfo: diffinsight.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#89b4fa",
			},
			ToastSuccess: diffinsight.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#a6e3a1",
			},
			ToastError: diffinsight.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#f38ba8",
			},
		},
		palette: diffinsight.Palette{
			// Base colors (Catppuccin Mocha)
			Background: "#1e1e2e",
			Foreground: "#cdd6f4",

			Added:   "#a6e3a1",
			Deleted: "#f38ba8",
			Context: "#6c7086",
			Warning: "#f9e2af",
			Success: "#a6e3a1",
			Error:   "#f38ba8",
			Accent:  "#89b4fa",
			Surface: "#313244",
			Subtle:  "#a6adc8",

			// Syntax highlighting colors
			Keyword:     "#cba6f7",
			String:      "#a6e3a1",
			Number:      "#fab387",
			Comment:     "#6c7086",
			Operator:    "#89dceb",
			Function:    "#89b4fa",
			Type:        "#f9e2af",
			Constant:    "#fab387",
			Punctuation: "#9399b2",
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		styles: diffinsight.Styles{
			Addition: diffinsight.ColorPair{
				Foreground: "#40a02b", // Green
				Background: "#d4f4d4", // Subtle green background
			},
			Deletion: diffinsight.ColorPair{
				Foreground: "#d20f39", // Red
				Background: "#f4d4d4", // Subtle red background
			},
			Neutral: diffinsight.ColorPair{
				Foreground: "#9ca0b0",
			},
			Title: diffinsight.ColorPair{
				Foreground: "#8839ef",
			},
			Subtitle: diffinsight.ColorPair{
				Foreground: "#6c6f85",
			},
			Border: diffinsight.ColorPair{
				Foreground: "#bcc0cc",
			},
			Focus: diffinsight.ColorPair{
				Foreground: "#1e66f5",
			},
			Issue: diffinsight.ColorPair{
				Foreground: "#df8e1d",
			},
			Solution: diffinsight.ColorPair{
				Foreground: "#40a02b",
			},
			Muted: diffinsight.ColorPair{
				Foreground: "#9ca0b0",
			},
			Button: diffinsight.ColorPair{
				Foreground: "#ffffff",
				Background: "#1e66f5",
			},
			Disabled: diffinsight.ColorPair{
				Foreground: "#9ca0b0",
				Background: "#e6e9ef",
			},
			ToastInfo: diffinsight.ColorPair{
				Foreground: "#ffffff",
				Background: "#1e66f5",
			},
			ToastSuccess: diffinsight.ColorPair{
				Foreground: "#ffffff",
				Background: "#40a02b",
			},
			ToastError: diffinsight.ColorPair{
				Foreground: "#ffffff",
				Background: "#d20f39",
			},
		},
		palette: diffinsight.Palette{
			// Base colors (Catppuccin Latte)
			Background: "#eff1f5",
			Foreground: "#4c4f69",

			Added:   "#40a02b",
			Deleted: "#d20f39",
			Context: "#9ca0b0",
			Warning: "#df8e1d",
			Success: "#40a02b",
			Error:   "#d20f39",
			Accent:  "#1e66f5",
			Surface: "#e6e9ef",
			Subtle:  "#6c6f85",

			// Syntax highlighting colors
			Keyword:     "#8839ef",
			String:      "#40a02b",
			Number:      "#fe640b",
			Comment:     "#9ca0b0",
			Operator:    "#04a5e5",
			Function:    "#1e66f5",
			Type:        "#df8e1d",
			Constant:    "#fe640b",
			Punctuation: "#6c6f85",
		},
	}
}
