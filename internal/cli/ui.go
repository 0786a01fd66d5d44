package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/vouchjs/pkg/deps"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Dependency Output
// =============================================================================

// printHeading prints "title detail", e.g. a package and its version.
func printHeading(w io.Writer, title, detail string) {
	line := StyleTitle.Render(title)
	if detail != "" {
		line += " " + StyleHighlight.Render(detail)
	}
	fmt.Fprintln(w, line)
}

// printDependencies prints one aligned "name version" row per dependency.
func printDependencies(w io.Writer, ds []deps.Dependency) {
	width := 0
	for _, d := range ds {
		width = max(width, len(d.Name))
	}
	name := lipgloss.NewStyle().Width(width + 2)
	for _, d := range ds {
		version := StyleValue.Render(d.Version.String())
		if d.Version.IsMissing() {
			version = StyleWarning.Render(d.Version.String())
		}
		fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+name.Render(d.Name)+version)
	}
	printDetail(w, "%d %s", len(ds), plural(len(ds), "dependency", "dependencies"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func printList(w io.Writer, key string, values []string) {
	printKeyValue(w, key, strings.Join(values, ", "))
}
