package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"milaunch/internal/core"
	"milaunch/internal/events"
	"milaunch/internal/tui"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ErrCancelled is returned when the user cancels an operation (e.g. prompt declined).
// When returned from a command, Execute exits with code 2.
var ErrCancelled = errors.New("cancelled")

var (
	version = "0.3.0"

	// Global flags
	configDir    string
	dataDir      string
	importerName string
	verbose      bool
	noGUI        bool
	noColor      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "milaunch",
	Short: "Model importer launcher - run 3dmigoto importers alongside their games",
	Long: `milaunch manages model-importer packages (GIMI, SRMI, WWMI, ZZMI, ...):
it keeps the 3dmigoto d3dx.ini in sync with your settings, validates or
autodetects game folders, and hands the game executable to the injector.

Use subcommands for operations. Run 'milaunch --help' for available commands.`,
	Version:       version,
	SilenceUsage:  true, // Runtime errors should not print usage
	SilenceErrors: true, // We handle error output in Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.config/milaunch)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default: ~/.local/share/milaunch)")
	rootCmd.PersistentFlags().StringVarP(&importerName, "importer", "i", "", "importer to operate on (default: active importer)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noGUI, "no-gui", false, "plain output, no dialogs or progress view")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// colorEnabled returns true if colored output should be used (respects --no-color and NO_COLOR env).
// NO_COLOR: if set (any value), color is disabled per https://no-color.org
func colorEnabled() bool {
	if noColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return true
}

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

// colorGreen returns s with green ANSI when color is enabled, otherwise s.
func colorGreen(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiGreen + s + ansiReset
}

// colorRed returns s with red ANSI when color is enabled, otherwise s.
func colorRed(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiRed + s + ansiReset
}

// colorYellow returns s with yellow ANSI when color is enabled, otherwise s.
func colorYellow(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiYellow + s + ansiReset
}

// Execute runs the root command. Exit codes: 0 = success, 1 = error, 2 = user cancelled.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, ErrCancelled) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// statusSink and confirmSink receive signals from the core; the launch
// progress view swaps them out while active. The mutex orders the swap
// against the event queue's dispatch goroutine.
var (
	sinkMu     sync.Mutex
	statusSink = func(status string) {
		fmt.Println(status)
	}
	confirmSink = confirmPrompt
)

func dispatchStatus(status string) {
	sinkMu.Lock()
	sink := statusSink
	sinkMu.Unlock()
	sink(status)
}

func askConfirm(req events.ConfirmRequest) bool {
	sinkMu.Lock()
	sink := confirmSink
	sinkMu.Unlock()
	return sink(req)
}

// swapSinks installs replacement sinks and returns the function that
// puts the previous ones back.
func swapSinks(status func(string), confirm func(events.ConfirmRequest) bool) func() {
	sinkMu.Lock()
	prevStatus, prevConfirm := statusSink, confirmSink
	statusSink, confirmSink = status, confirm
	sinkMu.Unlock()
	return func() {
		sinkMu.Lock()
		statusSink, confirmSink = prevStatus, prevConfirm
		sinkMu.Unlock()
	}
}

// handleSignal dispatches fire-and-forget signals from the core.
func handleSignal(sig any) {
	switch sig := sig.(type) {
	case events.StatusUpdate:
		dispatchStatus(sig.Status)
	case events.InstallStarted:
		fmt.Printf("Installing %s...\n", sig.PackageName)
	case events.OpenSettings:
		fmt.Println(colorYellow("Game folder could not be resolved. Check the importer's game_folder in importers.yaml."))
	case events.RequestReinstall:
		fmt.Printf("%s\n", colorYellow(fmt.Sprintf(
			"Reinstall requested for %s. Run 'milaunch install <package-dir>' to restore it.",
			strings.Join(sig.Packages, ", "))))
	case events.StartAndInject:
		fmt.Printf("%s %s\n", colorGreen("Start and inject:"), sig.ExePath)
	}
}

// confirmPrompt answers ConfirmRequests: a dialog normally, a plain
// stdin prompt with --no-gui.
func confirmPrompt(req events.ConfirmRequest) bool {
	if noGUI {
		fmt.Println(req.Message)
		fmt.Printf("%s? [y/N]: ", req.ConfirmText)
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}
	accepted, err := tui.RunConfirm(req)
	if err != nil {
		return false
	}
	return accepted
}

// initService creates the core service together with its event queue.
// Callers must Close the queue to drain pending signals.
func initService() (*core.Service, *events.Queue, error) {
	cfg, err := getServiceConfig()
	if err != nil {
		return nil, nil, err
	}

	// Ensure directories exist
	if err := os.MkdirAll(cfg.ConfigDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating data dir: %w", err)
	}

	queue := events.NewQueue(handleSignal, askConfirm, 16)

	svc, err := core.NewService(cfg, queue, newLogger(cfg.DataDir))
	if err != nil {
		queue.Close()
		return nil, nil, err
	}
	svc.WarmUpActive()
	return svc, queue, nil
}

// newLogger opens the append-mode launcher log. Logging must never block
// a launch: on any failure a no-op logger is returned.
func newLogger(dataDir string) zerolog.Logger {
	logPath := filepath.Join(dataDir, "milaunch.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop()
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(file).Level(level).With().Timestamp().Logger()
}

// getServiceConfig returns the service configuration with defaults.
func getServiceConfig() (core.ServiceConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return core.ServiceConfig{}, fmt.Errorf("home directory: %w", err)
	}

	cfg := core.ServiceConfig{
		ConfigDir: configDir,
		DataDir:   dataDir,
	}
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = filepath.Join(homeDir, ".config", "milaunch")
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(homeDir, ".local", "share", "milaunch")
	}
	return cfg, nil
}

func main() {
	Execute()
}
