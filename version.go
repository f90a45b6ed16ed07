package nulua

const (
	// Name is the plugin name reported to the host.
	Name = "lua"

	// Version is the plugin version.
	Version = "0.1.0"

	// Description is shown by the host's plugin listing.
	Description = "embedded lua sessions for nushell"
)
