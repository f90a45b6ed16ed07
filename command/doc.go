// Package command provides typed command declaration and dispatch.
//
// A Builder threads the handler's argument tuple type through every declared
// argument, so the signature the host sees and the values the handler
// receives come from the same declaration. Built commands are collected in an
// immutable Registry that applies middleware (panic recovery, logging) and
// dispatches by name.
package command
