// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Step is one transaction the operation has submitted.
type Step struct {
	Key     string // transaction hash
	Label   string
	Status  string // Pending | Confirmed | Failed
	Details string
}

// StepsComponent renders the transactions of an operation in submission
// order.
type StepsComponent struct {
	steps []Step
}

// NewStepsComponent creates an empty step list.
func NewStepsComponent() *StepsComponent {
	return &StepsComponent{
		steps: make([]Step, 0, 2),
	}
}

// Update inserts step or replaces the one with the same key.
func (s *StepsComponent) Update(step Step) {
	for i, existing := range s.steps {
		if existing.Key == step.Key {
			s.steps[i] = step
			return
		}
	}
	s.steps = append(s.steps, step)
}

// Len returns the number of steps.
func (s *StepsComponent) Len() int {
	return len(s.steps)
}

// View renders the step list.
func (s *StepsComponent) View() string {
	if len(s.steps) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Render("preparing transaction...")
	}

	var b strings.Builder
	for _, step := range s.steps {
		marker := "◌ Pending"
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
		switch step.Status {
		case "Confirmed":
			marker = "● Confirmed"
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
		case "Failed":
			marker = "✕ Failed"
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
		}

		line := fmt.Sprintf("├─ %s: %s", step.Label, style.Render(marker))
		if step.Details != "" {
			line += " (" + step.Details + ")"
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}
