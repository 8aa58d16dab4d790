package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// StatusMsg updates the line shown next to the spinner
type StatusMsg struct {
	Status string
}

// DoneMsg ends the view with a final line
type DoneMsg struct {
	Message string
	Failed  bool
}

// LaunchView shows launch progress: a spinner plus the latest status
// update from the launch sequence.
type LaunchView struct {
	spinner spinner.Model
	status  string
	final   string
	failed  bool
	done    bool
}

// NewLaunchView creates the progress view
func NewLaunchView() LaunchView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle
	return LaunchView{
		spinner: s,
		status:  "Starting...",
	}
}

// Init implements tea.Model
func (v LaunchView) Init() tea.Cmd {
	return v.spinner.Tick
}

// Update implements tea.Model
func (v LaunchView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StatusMsg:
		v.status = msg.Status
		return v, nil
	case DoneMsg:
		v.final = msg.Message
		v.failed = msg.Failed
		v.done = true
		return v, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			v.done = true
			return v, tea.Quit
		}
		return v, nil
	default:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}
}

// View implements tea.Model
func (v LaunchView) View() string {
	if v.done {
		if v.final == "" {
			return ""
		}
		if v.failed {
			return failStyle.Render("✗ "+v.final) + "\n"
		}
		return doneStyle.Render("✓ "+v.final) + "\n"
	}
	return v.spinner.View() + " " + statusStyle.Render(v.status) + "\n"
}
