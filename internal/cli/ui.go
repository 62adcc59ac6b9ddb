package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/energydiagram/pkg/pipeline"
)

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success, cache hits
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // secondary text
	colorDim    = lipgloss.Color("240") // muted text
)

// Exported styles are shared with the table and browser views.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleFormat      = lipgloss.NewStyle().Foreground(colorCyan).Width(5)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	separator   = " · "
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under the previous message.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printArtifact prints one rendered format with its destination and size.
func printArtifact(format, path string, size int) {
	fmt.Println(artifactLine(format, path, size))
}

func artifactLine(format, path string, size int) string {
	return "  " + StyleDim.Render(iconArrow) + " " + styleFormat.Render(format) + " " +
		StyleValue.Render(path) + " " + StyleDim.Render(formatBytes(int64(size)))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printStats summarizes a render result on one line.
func printStats(s pipeline.Stats, ci pipeline.CacheInfo, formats int) {
	fmt.Println(statsLine(s, ci, formats))
}

// statsLine renders e.g. "3 levels · 1 label · 2 links · 1/2 cached · 14ms".
// Labels and links are omitted when absent; the render time only when
// something was drawn.
func statsLine(s pipeline.Stats, ci pipeline.CacheInfo, formats int) string {
	parts := []string{StyleDim.Render(plural(s.Levels, "level"))}
	if s.Labels > 0 {
		parts = append(parts, StyleDim.Render(plural(s.Labels, "label")))
	}
	if s.Links > 0 {
		parts = append(parts, StyleDim.Render(plural(s.Links, "link")))
	}
	switch {
	case ci.RenderHit:
		parts = append(parts, styleCached.Render("cached"))
	case ci.ArtifactHits > 0:
		parts = append(parts, styleCached.Render(fmt.Sprintf("%d/%d cached", ci.ArtifactHits, formats)))
	default:
		parts = append(parts, StyleDim.Render("fresh"))
	}
	if !ci.RenderHit && s.RenderTime > 0 {
		parts = append(parts, StyleDim.Render(s.RenderTime.Round(time.Millisecond).String()))
	}
	return "  " + strings.Join(parts, StyleDim.Render(separator))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
