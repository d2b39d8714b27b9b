// Package ui formats command output with lipgloss styles.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// Printer writes styled status lines to W.
type Printer struct {
	W io.Writer
}

func (p Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.W, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (p Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.W, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func (p Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.W, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.W, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// Detail prints an indented, dimmed line.
func (p Printer) Detail(format string, args ...any) {
	fmt.Fprintln(p.W, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// File reports a written output file.
func (p Printer) File(path string) {
	fmt.Fprintln(p.W, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func (p Printer) KeyValue(key string, value any) {
	fmt.Fprintln(p.W, styleKey.Render(key)+" "+StyleValue.Render(fmt.Sprint(value)))
}

// Source tags a result as served from the cache or freshly solved.
func (p Printer) Source(cached bool) {
	if cached {
		p.KeyValue("source", styleCached.Render("cached"))
		return
	}
	p.KeyValue("source", styleComputed.Render("solved"))
}
