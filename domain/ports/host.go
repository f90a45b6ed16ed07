package ports

// Host is the engine-side interface the shell exposes to a running command.
type Host interface {
	// SetGCDisabled stops the host from shutting the plugin down while it
	// holds state the host cannot see, such as live sessions.
	SetGCDisabled(disabled bool) error
}
