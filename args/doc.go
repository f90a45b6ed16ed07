// Package args binds the host's untyped positional values to statically typed
// handler inputs.
//
// An Extractor converts one slot; a List aggregates extractors over an ordered
// tuple and produces both the parsed tuple and the slot metadata used for the
// command signature, so declaration order and extraction order cannot drift:
//
//	list := args.Of2(
//	    args.Arg("name", "who to greet", args.String()),
//	    args.Arg("times", "how often", args.Int()),
//	)
//	in, err := list.FromValues(call.Positional) // in is args.Tuple2[string, int64]
package args
