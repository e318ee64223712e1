package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cyclone1070/fastctx/internal/ui/models"
	"github.com/Cyclone1070/fastctx/internal/ui/services"
	"github.com/Cyclone1070/fastctx/internal/ui/views"
	"github.com/Cyclone1070/fastctx/internal/workflow"
)

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	renderer services.MarkdownRenderer

	// Workflow -> UI
	events <-chan workflow.Event

	// cancel stops the running search when the user quits early.
	cancel func()
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

func newBubbleTeaModel(
	query string,
	events <-chan workflow.Event,
	cancel func(),
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
) BubbleTeaModel {
	return BubbleTeaModel{
		state: models.State{
			Query:   query,
			Spinner: spinnerFactory(),
		},
		renderer: renderer,
		events:   events,
		cancel:   cancel,
	}
}

// Internal messages
type eventMsg struct {
	event workflow.Event
}
type eventsClosedMsg struct{}

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	return tea.Batch(
		m.state.Spinner.Tick,
		listenForEvents(m.events),
	)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.cancel != nil {
				m.cancel()
			}
			m.state.Quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width

	case spinner.TickMsg:
		if m.state.Result != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case eventMsg:
		return m.handleEvent(msg.event)

	case eventsClosedMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m BubbleTeaModel) handleEvent(e workflow.Event) (tea.Model, tea.Cmd) {
	switch e := e.(type) {
	case workflow.StatusEvent:
		m.finishCurrent(false)
		m.state.StatusMessage = e.Message

	case workflow.TurnStartEvent:
		m.finishCurrent(false)
		m.state.Turn = e.Turn
		m.state.TotalTurns = e.Total
		m.state.StatusMessage = "Waiting for the model"

	case workflow.ToolStartEvent:
		m.finishCurrent(false)
		m.state.StatusMessage = fmt.Sprintf("Running %s", e.RequestDisplay)

	case workflow.ToolEndEvent:
		m.finishCurrent(e.Failed)

	case workflow.ForcedAnswerEvent:
		m.state.Steps = append(m.state.Steps, models.Step{Text: "Asked the model to answer now"})

	case workflow.DoneEvent:
		m.finishCurrent(e.Result != nil && e.Result.Err != nil)
		m.state.Result = e.Result
		return m, tea.Quit
	}

	return m, listenForEvents(m.events)
}

// finishCurrent moves the in-progress status into the step log.
func (m *BubbleTeaModel) finishCurrent(failed bool) {
	if m.state.StatusMessage == "" {
		return
	}
	text := m.state.StatusMessage
	if m.state.TotalTurns > 0 {
		text = fmt.Sprintf("[%d/%d] %s", m.state.Turn, m.state.TotalTurns, text)
	}
	m.state.Steps = append(m.state.Steps, models.Step{Text: text, Failed: failed})
	m.state.StatusMessage = ""
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	if m.state.Quitting && m.state.Result == nil {
		return ""
	}
	return views.RenderRoot(m.state, m.renderer)
}

func listenForEvents(ch <-chan workflow.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: e}
	}
}
