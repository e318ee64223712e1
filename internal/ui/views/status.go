package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/fastctx/internal/ui/models"
)

// RenderStatus renders the spinner line for the step in progress.
func RenderStatus(s models.State) string {
	if s.Result != nil {
		return ""
	}
	msg := s.StatusMessage
	if msg == "" {
		msg = "Starting"
	}
	line := StatusActiveStyle.Render(fmt.Sprintf("%s %s", s.Spinner.View(), msg))
	if s.TotalTurns > 0 {
		line += "  " + TurnStyle.Render(fmt.Sprintf("turn %d/%d", s.Turn, s.TotalTurns))
	}
	return line
}

// RenderSteps renders the finished steps, one per line.
func RenderSteps(s models.State) string {
	lines := make([]string, 0, len(s.Steps))
	for _, step := range s.Steps {
		if step.Failed {
			lines = append(lines, StepFailedStyle.Render("✘ "+step.Text))
		} else {
			lines = append(lines, StepDoneStyle.Render("✔ "+step.Text))
		}
	}
	return strings.Join(lines, "\n")
}
