package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/planrep/pkg/pipeline"
)

// Terminal palette, ANSI 256 colors.
var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorTeal)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorAmber)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorTeal)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// status prints msg behind an icon in the given color.
func status(icon string, color lipgloss.Color, format string, args ...any) {
	fmt.Println(lipgloss.NewStyle().Foreground(color).Render(icon) + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(iconSuccess, colorGreen, format, args...) }
func printError(format string, args ...any)   { status(iconError, colorRed, format, args...) }
func printInfo(format string, args ...any)    { status(iconInfo, colorGray, format, args...) }

// printDetail prints an indented muted line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written artifact path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints value behind a fixed-width key column.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// statsLine summarizes an expansion, e.g.
// "4 nodes · 6 edges · 1 crossings · 0 split nodes · fresh".
func statsLine(s pipeline.Stats, cached bool) string {
	count := func(n int, what string) string {
		return StyleNumber.Render(fmt.Sprint(n)) + StyleDim.Render(" "+what)
	}
	origin := lipgloss.NewStyle().Foreground(colorGray).Render(iconFresh)
	if cached {
		origin = StyleSuccess.Render(iconCached)
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", s.NodeCount)),
		StyleDim.Render(fmt.Sprintf("%d edges", s.EdgeCount)),
		count(s.Crossings, "crossings"),
		count(s.SplitNodes, "split nodes"),
		origin,
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

func printStats(s pipeline.Stats, cached bool) {
	fmt.Println(statsLine(s, cached))
}
