// Package session keeps the engine instances the host refers to by handle.
//
// The host never sees an engine directly. It holds a Handle inside a custom
// value and passes it back on every call; the Registry resolves the handle to
// its Session. Sessions live until Destroy is called, typically when the host
// reports that it dropped the last copy of the handle.
package session
