package command

// Registry stores commands by name. Registration happens at startup only;
// lookups afterwards are read-only, so no locking is needed.
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns a registry preloaded with the given commands.
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command)}
	for _, c := range cmds {
		r.Register(c)
	}
	return r
}

// Register adds a command, replacing any previous one with the same name.
func (r *Registry) Register(c Command) {
	r.commands[c.Name()] = c
}

// Get returns the command with the given name.
func (r *Registry) Get(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// Defaults returns the built-in command set.
func Defaults() []Command {
	return []Command{&Join{}, &Play{}, &Leave{}, &Stop{}}
}
