package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/sustainabuy/backend/internal/domain"
)

var (
	stepColor    = color.New(color.FgGreen)
	headingColor = color.New(color.FgCyan, color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
)

// printSteps renders scanner steps as a checklist
func printSteps(w io.Writer, steps []domain.ScanStep) {
	for _, step := range steps {
		switch step.Status {
		case domain.StepComplete:
			stepColor.Fprintf(w, "✓ %s\n", step.Message)
		case domain.StepError:
			color.New(color.FgRed).Fprintf(w, "✗ %s\n", step.Message)
		default:
			mutedColor.Fprintf(w, "… %s\n", step.Message)
		}
	}
}

// scoreColor picks green/yellow/red bands for a total score
func scoreColor(total int) *color.Color {
	switch {
	case total >= 80:
		return color.New(color.FgGreen, color.Bold)
	case total >= 60:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func printHeading(w io.Writer, format string, args ...interface{}) {
	headingColor.Fprintf(w, "%s\n", fmt.Sprintf(format, args...))
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
