package command

// Bundle is a pre-configured set of related commands.
// Bundles allow registering multiple commands at once.
type Bundle interface {
	// Commands returns the commands of the bundle.
	Commands() []*Command
}

// staticBundle implements Bundle with a fixed set of commands.
type staticBundle struct {
	commands []*Command
}

func (b *staticBundle) Commands() []*Command {
	return b.commands
}

// NewBundle returns a bundle holding exactly the given commands.
func NewBundle(cmds ...*Command) Bundle {
	return &staticBundle{commands: cmds}
}

// compositeBundle combines multiple bundles into one.
type compositeBundle struct {
	bundles []Bundle
}

func (b *compositeBundle) Commands() []*Command {
	var result []*Command
	for _, bundle := range b.bundles {
		result = append(result, bundle.Commands()...)
	}
	return result
}

// Combine returns a bundle containing the commands of every given bundle.
func Combine(bundles ...Bundle) Bundle {
	return &compositeBundle{bundles: bundles}
}

// WithBundle registers all commands from a bundle.
func WithBundle(bundle Bundle) RegistryOption {
	return func(b *registryBuilder) {
		for _, cmd := range bundle.Commands() {
			if err := b.addCommand(cmd); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}
