// Package entities provides the host-facing domain types of the plugin:
// untyped values, command signatures, calls, structured errors and the manifest.
// The host shell owns the real representation; these types model it at its interface.
package entities
