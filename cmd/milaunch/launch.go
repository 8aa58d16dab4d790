package main

import (
	"context"
	"fmt"

	"milaunch/internal/core"
	"milaunch/internal/events"
	"milaunch/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Run the launch sequence for an importer",
	Long: `Verifies the importer installation, writes the configured settings to
d3dx.ini, resolves the game folder (autodetecting it once when the
configured folder is invalid), runs game-specific preparation and the
pre-launch hook, then hands the game executable to the injector.`,
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	svc, queue, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()
	defer queue.Close()

	launcher, err := svc.Launcher(importerName)
	if err != nil {
		return err
	}

	var outcome core.Outcome
	if noGUI {
		outcome, err = launcher.StartGame(cmd.Context())
	} else {
		outcome, err = launchWithProgress(cmd, launcher)
	}
	if err != nil {
		return err
	}

	switch outcome {
	case core.OutcomeInjected:
		if noGUI {
			fmt.Println(colorGreen("Launch sequence complete."))
		}
		return nil
	case core.OutcomeReinstallRequested, core.OutcomeSettingsRequested:
		return ErrCancelled
	default:
		return fmt.Errorf("launch did not complete (%s)", outcome)
	}
}

// launchWithProgress runs StartGame behind a spinner view. Status
// updates are routed into the view for the duration of the attempt;
// the result is handed back over a channel so the attempt goroutine
// is fully drained before the sinks are restored.
func launchWithProgress(cmd *cobra.Command, launcher *core.Launcher) (core.Outcome, error) {
	program := tea.NewProgram(tui.NewLaunchView())

	restore := swapSinks(
		func(status string) {
			program.Send(tui.StatusMsg{Status: status})
		},
		func(req events.ConfirmRequest) bool {
			// The confirm dialog needs the terminal to itself.
			program.ReleaseTerminal()
			defer program.RestoreTerminal()
			return confirmPrompt(req)
		},
	)
	defer restore()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	type result struct {
		outcome core.Outcome
		err     error
	}
	done := make(chan result, 1)
	go func() {
		outcome, launchErr := launcher.StartGame(ctx)
		msg := tui.DoneMsg{Message: "Launch sequence complete."}
		if launchErr != nil {
			msg = tui.DoneMsg{Message: launchErr.Error(), Failed: true}
		} else if outcome != core.OutcomeInjected {
			msg = tui.DoneMsg{Message: "Launch aborted.", Failed: true}
		}
		program.Send(msg)
		done <- result{outcome: outcome, err: launchErr}
	}()

	_, runErr := program.Run()
	// Unblock the attempt if the view exited early (ctrl+c), then wait
	// for it so outcome and sinks are settled.
	cancel()
	res := <-done
	if runErr != nil {
		return core.OutcomeFailed, fmt.Errorf("progress view: %w", runErr)
	}
	return res.outcome, res.err
}
