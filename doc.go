// Package nulua is a nushell plugin that embeds lua.
//
// "lua new" starts an interpreter and returns it as an opaque custom value;
// "lua eval" runs code against it and converts the result to a shell value:
//
//	> let l = lua new
//	> lua eval $l "x = 20"
//	> lua eval $l "{ answer = x + 22 }"
//	╭────────┬────╮
//	│ answer │ 42 │
//	╰────────┴────╯
//
// The host keeps the custom value and notifies the plugin when the last copy
// is dropped, at which point the interpreter is discarded. "lua close" does
// the same explicitly.
//
// The protocol layer talking to the host is outside this package: it loads
// the configuration with config.Load, overlays the host's plugin config record
// with Config.Merge before calling New, calls Plugin.Run for each command,
// encodes results with Plugin.EncodeCustom and forwards drop notifications to
// Plugin.CustomValueDroppedWire.
package nulua
