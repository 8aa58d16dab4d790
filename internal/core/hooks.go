package core

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"time"

	"milaunch/internal/domain"
)

// HookEnv provides environment information for launch hook commands
type HookEnv struct {
	Importer     string
	ImporterPath string
	GamePath     string
	Stage        string // e.g. "pre_launch", "post_load"
}

// HookResult contains the output from a waited-for hook command
type HookResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// HookRunner executes configured launch hook commands. Commands carry an
// integrity signature that must match before anything is executed.
type HookRunner struct {
	timeout time.Duration
}

// NewHookRunner creates a hook runner with the given timeout for
// waited-for commands
func NewHookRunner(timeout time.Duration) *HookRunner {
	return &HookRunner{timeout: timeout}
}

// SignCommand returns the integrity signature for a hook command string.
func SignCommand(command string) string {
	sum := sha256.Sum256([]byte(command))
	return hex.EncodeToString(sum[:])
}

// VerifySignature checks a hook command against its stored signature.
func VerifySignature(hook domain.HookCommand) error {
	if SignCommand(hook.Command) != hook.Signature {
		return fmt.Errorf("%w: %q", domain.ErrBadHookSignature, hook.Command)
	}
	return nil
}

// Run executes hook. Empty hooks are a no-op. When hook.Wait is set the
// call blocks until the command exits (subject to the runner timeout) and
// returns its output; otherwise the command is started detached and the
// result is nil.
func (r *HookRunner) Run(ctx context.Context, hook domain.HookCommand, env HookEnv) (*HookResult, error) {
	if hook.IsEmpty() {
		return nil, nil
	}
	if err := VerifySignature(hook); err != nil {
		return nil, err
	}

	environ := append(os.Environ(),
		"MILAUNCH_IMPORTER="+env.Importer,
		"MILAUNCH_IMPORTER_PATH="+env.ImporterPath,
		"MILAUNCH_GAME_PATH="+env.GamePath,
		"MILAUNCH_HOOK="+env.Stage,
	)

	if !hook.Wait {
		cmd := exec.Command("sh", "-c", hook.Command)
		cmd.Env = environ
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("starting hook: %w", err)
		}
		// Detached: the launch sequence does not track hook completion
		if err := cmd.Process.Release(); err != nil {
			return nil, fmt.Errorf("releasing hook process: %w", err)
		}
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", hook.Command)
	cmd.WaitDelay = 100 * time.Millisecond // Allow graceful shutdown after context cancel
	cmd.Env = environ

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &HookResult{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return result, fmt.Errorf("hook timed out after %v: %s", r.timeout, hook.Command)
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, fmt.Errorf("hook failed with exit code %d: %s", result.ExitCode, hook.Command)
		}
		return result, fmt.Errorf("running hook: %w", err)
	}

	return result, nil
}
