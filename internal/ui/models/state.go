package models

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/Cyclone1070/fastctx/internal/result"
)

// Step is one finished line in the progress log.
type Step struct {
	Text   string
	Failed bool
}

// State holds everything the views render.
type State struct {
	Query   string
	Spinner spinner.Model

	// StatusMessage describes the step in progress.
	StatusMessage string
	Turn          int
	TotalTurns    int

	Steps []Step

	// Result is set once the search finishes.
	Result *result.Result

	Width    int
	Quitting bool
}
