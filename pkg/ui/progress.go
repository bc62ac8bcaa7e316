package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	"github.com/fd1az/usdt-bridge/pkg/ui/components"
)

// Operation runs the bridge call the progress view waits on.
type Operation func() (*domain.BridgeResult, error)

// Model is the Bubble Tea model shown while an operation is in flight.
type Model struct {
	title   string
	run     Operation
	abort   func()
	spinner spinner.Model
	steps   *components.StepsComponent
	keys    KeyMap
	help    help.Model

	done    bool
	aborted bool
	result  *domain.BridgeResult
	err     error
}

// NewProgress creates the view for run. abort is called when the user
// quits before the operation returns; it should cancel run's context.
func NewProgress(title string, run Operation, abort func()) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return Model{
		title:   title,
		run:     run,
		abort:   abort,
		spinner: s,
		steps:   components.NewStepsComponent(),
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// Init starts the spinner and the operation.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.execute)
}

func (m Model) execute() tea.Msg {
	res, err := m.run()
	return DoneMsg{Result: res, Err: err}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && !m.done && !m.aborted {
			// keep running until the operation observes the cancellation
			m.aborted = true
			if m.abort != nil {
				m.abort()
			}
		}
		return m, nil

	case RecordMsg:
		if msg.Record != nil {
			m.steps.Update(stepFor(msg.Record))
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress view. The final result is printed by the
// caller after the program exits.
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title) + "\n\n")

	status := "waiting for the network"
	if m.aborted {
		status = "aborting"
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", m.spinner.View(), status))
	b.WriteString(m.steps.View())
	b.WriteString("\n" + HelpStyle.Render(m.help.View(m.keys)) + "\n")
	return b.String()
}

// Outcome returns what the operation returned.
func (m Model) Outcome() (*domain.BridgeResult, error) {
	return m.result, m.err
}

func stepFor(rec *domain.TransactionRecord) components.Step {
	details := shortHash(rec.Hash.Hex())
	if rec.BlockNumber != nil {
		details += fmt.Sprintf(", block %d", *rec.BlockNumber)
	}
	return components.Step{
		Key:     rec.Hash.Hex(),
		Label:   rec.Kind.Method(),
		Status:  string(rec.Status),
		Details: details,
	}
}

func shortHash(h string) string {
	if len(h) <= 14 {
		return h
	}
	return h[:8] + "…" + h[len(h)-6:]
}
