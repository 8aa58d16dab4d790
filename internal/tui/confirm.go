package tui

import (
	"fmt"

	"milaunch/internal/events"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2)
	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2)
	activeButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("9")).
				Bold(true)
)

// Confirm is a modal yes/no dialog model
type Confirm struct {
	message     string
	confirmText string
	cancelText  string
	selected    int // 0 = confirm, 1 = cancel
	answered    bool
	accepted    bool
}

// NewConfirm creates a confirm dialog
func NewConfirm(req events.ConfirmRequest) Confirm {
	confirmText := req.ConfirmText
	if confirmText == "" {
		confirmText = "OK"
	}
	cancelText := req.CancelText
	if cancelText == "" {
		cancelText = "Cancel"
	}
	return Confirm{
		message:     req.Message,
		confirmText: confirmText,
		cancelText:  cancelText,
		selected:    1, // Default to the safe choice
	}
}

// Accepted returns the user's answer after the dialog closed
func (c Confirm) Accepted() bool {
	return c.answered && c.accepted
}

// Init implements tea.Model
func (c Confirm) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (c Confirm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch keyMsg.String() {
	case "left", "h", "right", "l", "tab":
		c.selected = 1 - c.selected
		return c, nil
	case "y":
		c.answered = true
		c.accepted = true
		return c, tea.Quit
	case "n", "esc", "q", "ctrl+c":
		c.answered = true
		c.accepted = false
		return c, tea.Quit
	case "enter":
		c.answered = true
		c.accepted = c.selected == 0
		return c, tea.Quit
	}
	return c, nil
}

// View implements tea.Model
func (c Confirm) View() string {
	if c.answered {
		return ""
	}

	confirm := buttonStyle.Render(c.confirmText)
	cancel := activeButtonStyle.Render(c.cancelText)
	if c.selected == 0 {
		confirm = activeButtonStyle.Render(c.confirmText)
		cancel = buttonStyle.Render(c.cancelText)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, confirm, "  ", cancel)
	body := lipgloss.JoinVertical(lipgloss.Left, c.message, "", buttons)
	return dialogStyle.Render(body) + "\n"
}

// RunConfirm shows the dialog and blocks for the answer.
func RunConfirm(req events.ConfirmRequest) (bool, error) {
	model, err := tea.NewProgram(NewConfirm(req)).Run()
	if err != nil {
		return false, fmt.Errorf("running confirm dialog: %w", err)
	}
	confirm, ok := model.(Confirm)
	if !ok {
		return false, fmt.Errorf("unexpected model type %T", model)
	}
	return confirm.Accepted(), nil
}
