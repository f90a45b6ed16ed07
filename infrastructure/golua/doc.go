// Package golua implements the engine ports on top of github.com/Shopify/go-lua,
// a pure Go Lua 5.2 interpreter.
//
// # Basic Usage
//
//	factory := golua.NewFactory(golua.WithChunkName("=eval"))
//	sessions := session.NewRegistry(factory)
//
// # Value conversion
//
// Results are converted as follows:
//
//   - nil becomes nothing and booleans stay booleans
//   - integral numbers that fit in int64 become ints; other numbers floats
//   - strings become strings, or binary when they are not valid UTF-8
//   - tables with keys exactly 1..n become lists (an empty table is an empty list)
//   - other tables become records with their keys stringified and sorted
//
// Functions, threads and userdata have no shell representation and fail
// with *errors.ConversionError, as do tables nested deeper than MaxDepth.
package golua
