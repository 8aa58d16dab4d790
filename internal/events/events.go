// Package events defines the outbound signal surface between the launcher
// core and its host application (GUI, injector, package updater). Signals
// other than Confirm are fire-and-forget: emitters return as soon as the
// signal is queued and never wait for the receiving subsystem.
package events

// StatusUpdate reports launcher progress for display.
type StatusUpdate struct {
	Status string
}

// OpenSettings asks the host to bring up the settings UI.
type OpenSettings struct{}

// RequestReinstall asks the package updater to reinstall the named
// packages. Force bypasses version checks.
type RequestReinstall struct {
	Packages []string
	Force    bool
}

// StartAndInject hands the resolved game executable to the injection
// subsystem. The launcher's responsibility ends once this is emitted.
type StartAndInject struct {
	ExePath string
}

// InstallStarted announces the beginning of a package installation.
type InstallStarted struct {
	PackageName string
}

// ConfirmRequest is a blocking modal question to the user.
type ConfirmRequest struct {
	Message     string
	ConfirmText string
	CancelText  string
}

// Emitter is the core's view of the host application. One instance per
// session; implementations must tolerate emits after launch abort.
type Emitter interface {
	// Emit queues a fire-and-forget signal.
	Emit(sig any)
	// Confirm blocks for a user yes/no answer.
	Confirm(req ConfirmRequest) bool
}
