package domain

// HookCommand is a user-configured command run around game launch.
// Signature is the hex sha256 of the command string; a hook whose
// signature does not match its command refuses to run.
type HookCommand struct {
	Command   string `yaml:"command"`
	Signature string `yaml:"signature"`
	Wait      bool   `yaml:"wait"` // Block launch until the command exits
}

// IsEmpty returns true if no command is configured
func (h HookCommand) IsEmpty() bool {
	return h.Command == ""
}
