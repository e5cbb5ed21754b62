package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives reports and rendered listings. Logs go to stderr.
var stdout io.Writer = os.Stdout

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleAccent = lipgloss.NewStyle().Foreground(colorAccent)
	styleDim    = lipgloss.NewStyle().Foreground(colorFaint)
	styleValue  = lipgloss.NewStyle().Foreground(colorText)
	styleNumber = lipgloss.NewStyle().Foreground(colorAccent)
	styleKey    = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCmd    = lipgloss.NewStyle().Foreground(colorLink)
)

// status is the leading marker of a report line.
type status struct {
	icon  string
	style lipgloss.Style
}

var (
	statusOK   = status{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	statusFail = status{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	statusWarn = status{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	statusInfo = status{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

func (s status) println(format string, args ...any) {
	fmt.Fprintln(stdout, s.style.Render(s.icon)+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { statusOK.println(format, args...) }
func printError(format string, args ...any)   { statusFail.println(format, args...) }
func printInfo(format string, args ...any)    { statusInfo.println(format, args...) }

func printWarning(format string, args ...any) {
	statusWarn.println("%s", statusWarn.style.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written artifact.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+styleDim.Render("→")+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printStats prints the scene summary of one document.
func printStats(components, wires, junctions int, cached bool) {
	fmt.Fprintln(stdout, "  "+sceneSummary(components, wires, junctions, cached))
}

// sceneSummary joins item counts and the cache state, e.g.
// "3 components · 2 wires · fresh". Zero wire and junction counts are left out.
func sceneSummary(components, wires, junctions int, cached bool) string {
	parts := []string{styleDim.Render(plural(components, "component"))}
	for _, c := range []struct {
		n    int
		noun string
	}{{wires, "wire"}, {junctions, "junction"}} {
		if c.n > 0 {
			parts = append(parts, styleDim.Render(plural(c.n, c.noun)))
		}
	}
	if cached {
		parts = append(parts, statusOK.style.Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorMuted).Render("fresh"))
	}
	return strings.Join(parts, styleDim.Render(" · "))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// printNextStep suggests a command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, styleDim.Render(description+":")+" "+styleCmd.Render(cmd))
}
