// Package ui renders search progress in the terminal with Bubble Tea.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cyclone1070/fastctx/internal/result"
	"github.com/Cyclone1070/fastctx/internal/ui/services"
	"github.com/Cyclone1070/fastctx/internal/workflow"
)

// UI shows a live progress view for one search.
type UI struct {
	program *tea.Program
}

// NewUI creates a new Bubble Tea UI that follows events until the search
// reports it is done. cancel is invoked if the user quits first.
func NewUI(
	query string,
	events <-chan workflow.Event,
	cancel func(),
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
	opts ...tea.ProgramOption,
) *UI {
	model := newBubbleTeaModel(query, events, cancel, renderer, spinnerFactory)
	return &UI{program: tea.NewProgram(model, opts...)}
}

// Run blocks until the search finishes or the user quits. The returned
// result is nil when the user quit first.
func (u *UI) Run() (*result.Result, error) {
	final, err := u.program.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(BubbleTeaModel)
	if !ok {
		return nil, nil
	}
	return m.state.Result, nil
}
