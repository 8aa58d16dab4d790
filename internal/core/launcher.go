package core

import (
	"context"
	"errors"
	"fmt"
	"os"

	"milaunch/internal/domain"
	"milaunch/internal/events"
	"milaunch/internal/games"
	"milaunch/internal/ini"
	"milaunch/internal/storage/config"
	"milaunch/internal/storage/db"

	"github.com/rs/zerolog"
)

// Outcome is the terminal state of one launch attempt
type Outcome string

const (
	// OutcomeInjected: the executable was handed to the injection subsystem
	OutcomeInjected Outcome = "injected"
	// OutcomeReinstallRequested: integrity check failed, user accepted a
	// forced reinstall; the launch attempt stops here
	OutcomeReinstallRequested Outcome = "reinstall-requested"
	// OutcomeSettingsRequested: the game path could not be resolved even
	// after autodetection; the settings UI was asked to open
	OutcomeSettingsRequested Outcome = "settings-requested"
	// OutcomeFailed: an error propagated to the caller
	OutcomeFailed Outcome = "failed"
)

// LauncherOptions are the environment dependencies of a Launcher
type LauncherOptions struct {
	AppRoot   string
	ConfigDir string
	DB        *db.DB      // Optional: enables launch history
	Hooks     *HookRunner // Optional: enables pre-launch hook commands
	Logger    zerolog.Logger
}

// Launcher runs the "start game" sequence for one importer: integrity
// check, config sync, game path resolution with autodetect fallback,
// launch preparation, and handoff to the injection subsystem.
//
// A Launcher is single-use per attempt and must not be shared between
// concurrent launches; its ImporterConfig is mutated in place when
// autodetection finds a new game folder.
type Launcher struct {
	cfg     *domain.ImporterConfig
	flags   domain.RuntimeFlags
	integ   games.Integration
	emitter events.Emitter
	opts    LauncherOptions
	log     zerolog.Logger
}

// NewLauncher wires a launch sequence for cfg using the given game
// integration
func NewLauncher(cfg *domain.ImporterConfig, flags domain.RuntimeFlags, integ games.Integration, emitter events.Emitter, opts LauncherOptions) *Launcher {
	return &Launcher{
		cfg:     cfg,
		flags:   flags,
		integ:   integ,
		emitter: emitter,
		opts:    opts,
		log:     opts.Logger,
	}
}

// StartGame runs the launch sequence. Errors are returned for a damaged
// installation the user declined to restore, for INI projection
// failures, and for launch preparation failures; unresolvable game paths
// instead emit an OpenSettings signal and stop quietly.
func (l *Launcher) StartGame(ctx context.Context) (Outcome, error) {
	outcome, exePath, err := l.startGame(ctx)
	l.recordLaunch(outcome, exePath, err)
	return outcome, err
}

func (l *Launcher) startGame(ctx context.Context) (Outcome, string, error) {
	// Ensure package integrity
	ok, err := l.VerifyIntegrity()
	if err != nil {
		return OutcomeFailed, "", err
	}
	if !ok {
		return OutcomeReinstallRequested, "", nil
	}

	// Write configured settings to the main 3dmigoto ini file
	if err := l.UpdateIni(); err != nil {
		return OutcomeFailed, "", err
	}

	// Check that the game location is properly configured
	gamePath, exePath, err := l.resolveGamePath()
	if err != nil {
		l.log.Warn().Err(err).Msg("game path unresolved, opening settings")
		l.emitter.Emit(events.OpenSettings{})
		return OutcomeSettingsRequested, "", nil
	}

	// Game-specific launch preparation
	if err := l.integ.PreLaunch(ctx, gamePath); err != nil {
		return OutcomeFailed, "", fmt.Errorf("preparing %s launch: %w", l.integ.Name(), err)
	}
	env := HookEnv{
		Importer:     l.cfg.PackageName,
		ImporterPath: l.cfg.ImporterPath(l.opts.AppRoot),
		GamePath:     gamePath,
		Stage:        "pre_launch",
	}
	if l.opts.Hooks != nil && !l.cfg.PreLaunch.IsEmpty() {
		if _, err := l.opts.Hooks.Run(ctx, l.cfg.PreLaunch, env); err != nil {
			return OutcomeFailed, "", fmt.Errorf("pre-launch hook: %w", err)
		}
	}

	l.log.Info().Str("exe", exePath).Msg("handing off to injector")
	l.emitter.Emit(events.StartAndInject{ExePath: exePath})

	// The game is already on its way up; a post-load failure is logged,
	// never fatal.
	if l.opts.Hooks != nil && !l.cfg.PostLoad.IsEmpty() {
		env.Stage = "post_load"
		if _, err := l.opts.Hooks.Run(ctx, l.cfg.PostLoad, env); err != nil {
			l.log.Warn().Err(err).Msg("post-load hook failed")
		}
	}
	return OutcomeInjected, exePath, nil
}

// VerifyIntegrity confirms the critical d3dx.ini exists. When missing it
// asks the user whether to force a reinstall: accepting fires the
// reinstall request and returns (false, nil); declining returns an
// ErrCorruptInstall error.
func (l *Launcher) VerifyIntegrity() (bool, error) {
	iniPath := l.cfg.IniPath(l.opts.AppRoot)
	if _, err := os.Stat(iniPath); err == nil {
		return true, nil
	}

	restore := l.emitter.Confirm(events.ConfirmRequest{
		ConfirmText: "Restore",
		CancelText:  "Cancel",
		Message: fmt.Sprintf("%s installation is damaged!\n"+
			"Details: Missing critical file: %s!\n"+
			"Would you like to restore %s automatically?",
			l.cfg.PackageName, domain.IniFileName, l.cfg.PackageName),
	})
	if !restore {
		return false, fmt.Errorf("%w: missing critical file: %s", domain.ErrCorruptInstall, domain.IniFileName)
	}

	// Fire-and-forget: the reinstall runs in the package updater, this
	// launch attempt is over
	l.emitter.Emit(events.RequestReinstall{
		Packages: []string{l.cfg.PackageName},
		Force:    true,
	})
	return false, nil
}

// UpdateIni projects the configured setting groups onto d3dx.ini and
// saves the file only when something actually changed.
func (l *Launcher) UpdateIni() error {
	l.emitter.Emit(events.StatusUpdate{Status: "Updating d3dx.ini..."})

	doc, err := ini.Load(l.cfg.IniPath(l.opts.AppRoot))
	if err != nil {
		return err
	}

	p := NewProjector(l.cfg.D3DXIni)
	if err := p.ProjectConstant(doc, "core"); err != nil {
		return err
	}
	boolGroups := []struct {
		name string
		on   bool
	}{
		{"debug_logging", l.flags.DebugLogging},
		{"mute_warnings", l.flags.MuteWarnings},
		{"enable_hunting", l.flags.EnableHunting},
		{"dump_shaders", l.flags.DumpShaders},
	}
	for _, g := range boolGroups {
		if err := p.ProjectBool(doc, g.name, g.on); err != nil {
			return err
		}
	}

	if !doc.Modified() {
		return nil
	}
	l.log.Debug().Str("path", doc.Path()).Msg("d3dx.ini changed, saving")
	return doc.Save()
}

// resolveGamePath validates the configured game folder and locates the
// executable. On failure it tries autodetection once, and persists the
// detected folder when that works out.
func (l *Launcher) resolveGamePath() (gamePath, exePath string, err error) {
	gamePath, exePath, err = l.validateAndLocate(l.cfg.GameFolder)
	if err == nil {
		return gamePath, exePath, nil
	}
	l.log.Debug().Err(err).Str("folder", l.cfg.GameFolder).Msg("configured game folder invalid, autodetecting")

	folder, detectErr := l.integ.AutodetectFolder()
	if detectErr != nil {
		return "", "", err
	}
	gamePath, exePath, err = l.validateAndLocate(folder)
	if err != nil {
		return "", "", err
	}

	l.cfg.GameFolder = folder
	if l.opts.ConfigDir != "" {
		if saveErr := config.SaveImporter(l.opts.ConfigDir, l.cfg); saveErr != nil {
			l.log.Warn().Err(saveErr).Msg("could not persist autodetected game folder")
		}
	}
	return gamePath, exePath, nil
}

func (l *Launcher) validateAndLocate(folder string) (string, string, error) {
	gamePath, err := ValidateGamePath(folder)
	if err != nil {
		return "", "", err
	}
	exePath, err := l.integ.LocateExecutable(gamePath)
	if err != nil {
		return "", "", err
	}
	return gamePath, exePath, nil
}

// WarmUp runs the validate-then-autodetect sequence at package load,
// best effort: every failure is discarded, a successful detection is
// persisted for the next launch.
func (l *Launcher) WarmUp() {
	if _, _, err := l.validateAndLocate(l.cfg.GameFolder); err == nil {
		return
	}
	folder, err := l.integ.AutodetectFolder()
	if err != nil {
		return
	}
	if _, _, err := l.validateAndLocate(folder); err != nil {
		return
	}
	l.cfg.GameFolder = folder
	if l.opts.ConfigDir != "" {
		if err := config.SaveImporter(l.opts.ConfigDir, l.cfg); err != nil {
			l.log.Warn().Err(err).Msg("could not persist autodetected game folder")
		}
	}
}

// recordLaunch appends the attempt to the launch history, if enabled.
func (l *Launcher) recordLaunch(outcome Outcome, exePath string, err error) {
	if l.opts.DB == nil {
		return
	}
	var dbOutcome string
	switch {
	case outcome == OutcomeInjected:
		dbOutcome = db.OutcomeInjected
	case outcome == OutcomeReinstallRequested:
		dbOutcome = db.OutcomeReinstall
	case outcome == OutcomeSettingsRequested:
		dbOutcome = db.OutcomeSettings
	case errors.Is(err, domain.ErrCorruptInstall):
		dbOutcome = db.OutcomeCorruptInstall
	default:
		dbOutcome = db.OutcomeError
	}
	if err := l.opts.DB.RecordLaunch(l.cfg.PackageName, exePath, dbOutcome); err != nil {
		l.log.Warn().Err(err).Msg("could not record launch")
	}
}
