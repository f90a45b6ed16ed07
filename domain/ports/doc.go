// Package ports defines interfaces for infrastructure the plugin depends on.
// These ports enable dependency inversion - domain logic depends on abstractions,
// and infrastructure adapters (the Lua engine, the host shell) implement them.
package ports
