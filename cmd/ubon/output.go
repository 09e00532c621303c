package main

import (
	"fmt"
	"io"
	"math"

	"github.com/born-ml/ubon/nn"
	"github.com/born-ml/ubon/ubon"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	vanishStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderResults prints one line per graph: log|ψ| and the phase of ψ.
// Colors are only used when styled is set, i.e. when writing to a terminal.
func renderResults(w io.Writer, logPsi ubon.LogAmplitude, trivial bool, styled bool) {
	irrep := "sign-alternating"
	if trivial {
		irrep = "trivial"
	}
	header := fmt.Sprintf("%5s  %16s  %10s   (%s irrep)", "graph", "log|psi|", "phase", irrep)
	fmt.Fprintln(w, paint(headerStyle, header, styled))

	phases := logPsi.Phase()
	for i, v := range logPsi {
		magnitude := fmt.Sprintf("%16.8f", real(v))
		if real(v) == nn.ZeroLogMagnitude {
			magnitude = fmt.Sprintf("%16s", "-inf")
		}
		line := fmt.Sprintf("%5d  %s  %10.6f", i, magnitude, phases[i])
		switch {
		case real(v) == nn.ZeroLogMagnitude:
			line = paint(vanishStyle, line, styled)
		case math.Abs(phases[i]) > math.Pi/2:
			line = paint(negativeStyle, line, styled)
		}
		fmt.Fprintln(w, line)
	}
}

func paint(style lipgloss.Style, s string, styled bool) string {
	if !styled {
		return s
	}
	return style.Render(s)
}
