package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives status output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // accent, default node color in the terminal
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // links
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // info icons
	colorDim    = lipgloss.Color("240") // spokes, stats, hints
)

var (
	// StyleTitle for the chart title in watch.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary text and chart spokes.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for file paths and numbers.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	separator   = " · "
)

// status pairs an icon with the style it is drawn in.
type status struct {
	icon  string
	style lipgloss.Style
}

var (
	statusSuccess = status{iconSuccess, lipgloss.NewStyle().Foreground(colorGreen)}
	statusError   = status{iconError, styleIconError}
	statusWarning = status{iconWarning, StyleWarning}
	statusInfo    = status{iconInfo, lipgloss.NewStyle().Foreground(colorGray)}
)

// line renders msg behind the status icon.
func (s status) line(msg string) string {
	return s.style.Render(s.icon) + " " + msg
}

func printStatus(s status, format string, args ...any) {
	fmt.Fprintln(stdout, s.line(fmt.Sprintf(format, args...)))
}

func printSuccess(format string, args ...any) { printStatus(statusSuccess, format, args...) }

func printError(format string, args ...any) { printStatus(statusError, format, args...) }

func printInfo(format string, args ...any) { printStatus(statusInfo, format, args...) }

// printWarning renders the whole message in the warning color.
func printWarning(format string, args ...any) {
	printStatus(statusWarning, "%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written output, tagged with its format.
func printFile(format, path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(format+" "+iconArrow)+" "+StyleValue.Render(path))
}

// printLink prints a labelled URL.
func printLink(label, url string) {
	fmt.Fprintln(stdout, StyleDim.Render(label+":")+" "+StyleLink.Render(url))
}

// printStats prints the chart geometry under a render summary.
func printStats(nodes int, width, radius float64) {
	fmt.Fprintln(stdout, "  "+statsLine(nodes, width, radius))
}

// statsLine summarizes a chart's geometry, e.g. "3 nodes · width 400 · radius 60".
func statsLine(nodes int, width, radius float64) string {
	noun := "nodes"
	if nodes == 1 {
		noun = "node"
	}
	parts := []string{
		fmt.Sprintf("%d %s", nodes, noun),
		fmt.Sprintf("width %g", width),
		fmt.Sprintf("radius %g", radius),
	}
	return StyleDim.Render(strings.Join(parts, separator))
}
